package metrics

import (
	"sort"
	"time"

	"github.com/joe5h/tally/internal/model"
)

// TypeAmount is one transaction type's share of a window's spending.
type TypeAmount struct {
	TypeName string
	Amount   float64
	Percent  float64
}

// TransactionSummary is the windowed cash-flow view. Income and Spent are
// both reported as positive magnitudes; Net keeps its sign.
type TransactionSummary struct {
	SpentToday     float64
	SpentYesterday float64
	TodayDelta     float64
	SpentWeek      float64
	SpentLastWeek  float64
	WeekDelta      float64
	SpentMonth     float64
	SpentLastMonth float64
	MonthDelta     float64

	IncomeMonth float64
	NetMonth    float64

	ByTypeMonth []TypeAmount
}

// AggregateTransactions computes windowed spending totals from a snapshot of
// transactions. Negative amounts are spending, positive amounts income.
func AggregateTransactions(txns []model.Transaction, now time.Time) TransactionSummary {
	w := ComputeWindows(now)
	var s TransactionSummary

	byType := make(map[string]float64)

	for _, t := range txns {
		if t.TransactionDate.IsZero() {
			continue
		}
		spent := 0.0
		if t.Amount < 0 {
			spent = -t.Amount
		}

		switch {
		case w.Today.Contains(t.TransactionDate):
			s.SpentToday += spent
		case w.Yesterday.Contains(t.TransactionDate):
			s.SpentYesterday += spent
		}
		if w.Week.Contains(t.TransactionDate) {
			s.SpentWeek += spent
		} else if w.LastWeek.Contains(t.TransactionDate) {
			s.SpentLastWeek += spent
		}
		if w.Month.Contains(t.TransactionDate) {
			s.SpentMonth += spent
			if t.Amount > 0 {
				s.IncomeMonth += t.Amount
			}
			s.NetMonth += t.Amount
			if spent > 0 {
				name := t.TypeName
				if name == "" {
					name = "Uncategorized"
				}
				byType[name] += spent
			}
		} else if w.LastMonth.Contains(t.TransactionDate) {
			s.SpentLastMonth += spent
		}
	}

	s.TodayDelta = PercentDelta(s.SpentToday, s.SpentYesterday)
	s.WeekDelta = PercentDelta(s.SpentWeek, s.SpentLastWeek)
	s.MonthDelta = PercentDelta(s.SpentMonth, s.SpentLastMonth)

	for name, amount := range byType {
		s.ByTypeMonth = append(s.ByTypeMonth, TypeAmount{
			TypeName: name,
			Amount:   amount,
			Percent:  SafePercent(amount, s.SpentMonth),
		})
	}
	sort.Slice(s.ByTypeMonth, func(i, j int) bool {
		if s.ByTypeMonth[i].Amount != s.ByTypeMonth[j].Amount {
			return s.ByTypeMonth[i].Amount > s.ByTypeMonth[j].Amount
		}
		return s.ByTypeMonth[i].TypeName < s.ByTypeMonth[j].TypeName
	})

	return s
}
