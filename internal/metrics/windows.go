// Package metrics aggregates stored rows into the windowed sums, deltas and
// categorical breakdowns shown on the dashboard. Aggregation is total: any
// row set, including the empty one, produces a zero-filled result rather
// than an error.
package metrics

import "time"

// Window is a half-open date interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether a date falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(w.Start) && d.Before(w.End)
}

// Windows holds the current reporting windows and their immediately-prior
// counterparts used for delta comparison.
type Windows struct {
	Today     Window
	Yesterday Window
	Week      Window
	LastWeek  Window
	Month     Window
	LastMonth Window
	Year      Window
}

// ComputeWindows derives all reporting windows from a reference time.
// Weeks start on Monday, with Sunday counted as the seventh day.
func ComputeWindows(now time.Time) Windows {
	day := dateOnly(now)

	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := day.AddDate(0, 0, -(weekday - 1))

	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	return Windows{
		Today:     Window{Start: day, End: day.AddDate(0, 0, 1)},
		Yesterday: Window{Start: day.AddDate(0, 0, -1), End: day},
		Week:      Window{Start: weekStart, End: weekStart.AddDate(0, 0, 7)},
		LastWeek:  Window{Start: weekStart.AddDate(0, 0, -7), End: weekStart},
		Month:     Window{Start: monthStart, End: monthStart.AddDate(0, 1, 0)},
		LastMonth: Window{Start: monthStart.AddDate(0, -1, 0), End: monthStart},
		Year:      Window{Start: yearStart, End: yearStart.AddDate(1, 0, 0)},
	}
}

// PercentDelta computes the growth of current over previous as a percentage.
// A zero previous value yields 100 when anything happened and 0 otherwise,
// never a division by zero.
func PercentDelta(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// SafePercent computes part/total as a percentage, returning 0 for an
// empty total.
func SafePercent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
