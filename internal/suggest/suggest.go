// Package suggest detects recurring monthly payments in imported
// transactions and proposes them as bills.
package suggest

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/joe5h/tally/internal/model"
)

// DefaultTolerance is the maximum relative price change between consecutive
// payments that still counts as the same recurring charge.
const DefaultTolerance = 0.10

// MinMonths is how many distinct calendar months a charge must appear in
// before it is suggested.
const MinMonths = 3

// Candidate is a recurring payment detected in transaction history, ready
// to be turned into a bill.
type Candidate struct {
	Name       string
	AvgAmount  float64
	MinAmount  float64
	MaxAmount  float64
	TypicalDay int
	MonthCount int
	FirstSeen  time.Time
	LastSeen   time.Time
}

// Bill converts a candidate into a bill anchored on its last observed
// payment date.
func (c Candidate) Bill() model.Bill {
	return model.Bill{
		Name:      c.Name,
		Amount:    c.AvgAmount,
		Frequency: model.FrequencyMonthly,
		BillDate:  c.LastSeen,
	}
}

// RecurringBills finds expense charges that recur once a month at a stable
// amount. Charges whose normalized description matches an existing bill name
// are skipped.
func RecurringBills(txns []model.Transaction, existing []model.Bill, tolerance float64) []Candidate {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	known := make(map[string]bool, len(existing))
	for _, bill := range existing {
		known[normalize(bill.Name)] = true
	}

	// Group expenses by normalized description, keeping the most recent
	// original text for display.
	byName := make(map[string][]model.Transaction)
	displayNames := make(map[string]string)
	for _, txn := range txns {
		if txn.Amount >= 0 {
			continue
		}
		key := normalize(txn.Description)
		if key == "" || known[key] {
			continue
		}
		byName[key] = append(byName[key], txn)
		displayNames[key] = txn.Description
	}

	var candidates []Candidate
	for key, group := range byName {
		sort.Slice(group, func(i, j int) bool {
			return group[i].TransactionDate.Before(group[j].TransactionDate)
		})

		months := distinctMonths(group)
		if months < MinMonths {
			continue
		}
		if !oncePerMonth(group) {
			continue
		}
		if !amountsWithinTolerance(group, tolerance) {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:       displayNames[key],
			AvgAmount:  averageMagnitude(group),
			MinAmount:  minMagnitude(group),
			MaxAmount:  maxMagnitude(group),
			TypicalDay: typicalDay(group),
			MonthCount: months,
			FirstSeen:  group[0].TransactionDate,
			LastSeen:   group[len(group)-1].TransactionDate,
		})
	}

	// Strongest signal first: more months, then larger amounts.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].MonthCount != candidates[j].MonthCount {
			return candidates[i].MonthCount > candidates[j].MonthCount
		}
		return candidates[i].AvgAmount > candidates[j].AvgAmount
	})

	return candidates
}

// normalize folds case, collapses whitespace and strips trailing reference
// digits so "NETFLIX 0423" and "Netflix 0524" group together.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.Fields(s)
	for len(fields) > 1 {
		last := fields[len(fields)-1]
		if isDigits(last) {
			fields = fields[:len(fields)-1]
			continue
		}
		break
	}
	return strings.Join(fields, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func distinctMonths(txns []model.Transaction) int {
	months := make(map[string]bool)
	for _, txn := range txns {
		months[txn.TransactionDate.Format("2006-01")] = true
	}
	return len(months)
}

// oncePerMonth rejects groups with ever more than one payment in a calendar
// month; those are repeat purchases, not subscriptions.
func oncePerMonth(txns []model.Transaction) bool {
	byMonth := make(map[string]int)
	for _, txn := range txns {
		byMonth[txn.TransactionDate.Format("2006-01")]++
	}
	for _, count := range byMonth {
		if count != 1 {
			return false
		}
	}
	return true
}

// amountsWithinTolerance compares consecutive payments, which tolerates
// gradual price creep better than comparing everything to the average.
func amountsWithinTolerance(txns []model.Transaction, tolerance float64) bool {
	for i := 1; i < len(txns); i++ {
		prev := math.Abs(txns[i-1].Amount)
		curr := math.Abs(txns[i].Amount)
		if prev == 0 {
			return false
		}
		if math.Abs(curr-prev)/prev > tolerance {
			return false
		}
	}
	return true
}

func averageMagnitude(txns []model.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}
	sum := 0.0
	for _, txn := range txns {
		sum += math.Abs(txn.Amount)
	}
	return sum / float64(len(txns))
}

func minMagnitude(txns []model.Transaction) float64 {
	m := math.Abs(txns[0].Amount)
	for _, txn := range txns[1:] {
		if v := math.Abs(txn.Amount); v < m {
			m = v
		}
	}
	return m
}

func maxMagnitude(txns []model.Transaction) float64 {
	m := math.Abs(txns[0].Amount)
	for _, txn := range txns[1:] {
		if v := math.Abs(txn.Amount); v > m {
			m = v
		}
	}
	return m
}

func typicalDay(txns []model.Transaction) int {
	if len(txns) == 0 {
		return 0
	}
	sum := 0
	for _, txn := range txns {
		sum += txn.TransactionDate.Day()
	}
	return sum / len(txns)
}
