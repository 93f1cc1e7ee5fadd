// Package schedule projects recurring bills into concrete future due dates.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/joe5h/tally/internal/model"
)

// DefaultLookahead is how many occurrences each bill contributes to the
// upcoming view before the flattened list is truncated.
const DefaultLookahead = 6

// Project returns the next count occurrences of a bill relative to today.
// The first occurrence is the earliest projected date on or after today;
// each subsequent occurrence is exactly one period later. The anchor date
// itself never moves.
func Project(bill model.Bill, today time.Time, count int) []model.Occurrence {
	if count <= 0 {
		return nil
	}

	cursor := dateOnly(bill.BillDate)
	day := dateOnly(today)

	// Day-of-month anchor survives clamped months: a bill anchored on the
	// 31st lands on the 28th in February and back on the 31st in March.
	anchorDay := cursor.Day()

	periods := 0
	for cursor.Before(day) {
		periods++
		cursor = advance(bill.BillDate, bill.Frequency, periods, anchorDay)
	}

	occurrences := make([]model.Occurrence, 0, count)
	for i := 0; i < count; i++ {
		occurrences = append(occurrences, model.Occurrence{
			Bill:        bill,
			NextDueDate: cursor,
			InstanceID:  fmt.Sprintf("%s-%d", bill.ID, i),
		})
		periods++
		cursor = advance(bill.BillDate, bill.Frequency, periods, anchorDay)
	}
	return occurrences
}

// Upcoming projects every bill for a fixed lookahead, flattens the results,
// sorts ascending by due date, and keeps the first k.
func Upcoming(bills []model.Bill, today time.Time, k int) []model.Occurrence {
	var all []model.Occurrence
	for _, bill := range bills {
		all = append(all, Project(bill, today, DefaultLookahead)...)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].NextDueDate.Equal(all[j].NextDueDate) {
			return all[i].NextDueDate.Before(all[j].NextDueDate)
		}
		return all[i].Bill.Name < all[j].Bill.Name
	})

	if k >= 0 && len(all) > k {
		all = all[:k]
	}
	return all
}

// advance computes the anchor date plus n whole periods. Month-based
// frequencies are always computed from the anchor, not the previous cursor,
// so clamping in a short month never loses the anchor day.
func advance(anchor time.Time, freq model.Frequency, n int, anchorDay int) time.Time {
	anchor = dateOnly(anchor)

	switch freq {
	case model.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*n)
	case model.FrequencyBiWeekly:
		return anchor.AddDate(0, 0, 14*n)
	case model.FrequencyMonthly:
		return addMonthsClamped(anchor, n, anchorDay)
	case model.FrequencyQuarterly:
		return addMonthsClamped(anchor, 3*n, anchorDay)
	case model.FrequencyYearly:
		return addMonthsClamped(anchor, 12*n, anchorDay)
	default:
		return anchor
	}
}

// addMonthsClamped adds months keeping the anchor day where the target month
// allows it, clamping to the month's last day otherwise. This avoids the
// AddDate normalization where Jan 31 + 1 month becomes Mar 2 or 3.
func addMonthsClamped(anchor time.Time, months int, anchorDay int) time.Time {
	year, month := anchor.Year(), int(anchor.Month())+months
	// time.Date normalizes out-of-range months for us.
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	day := anchorDay
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
