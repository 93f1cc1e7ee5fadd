// Package model defines the core domain entities shared across the application.
package model

import (
	"fmt"
	"time"
)

// Frequency describes how often a bill repeats.
type Frequency string

// Supported bill frequencies.
const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "bi-weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Frequencies lists every valid frequency in display order.
var Frequencies = []Frequency{
	FrequencyWeekly,
	FrequencyBiWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyYearly,
}

// ParseFrequency validates a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid frequency %q (want weekly, bi-weekly, monthly, quarterly or yearly)", s)
}

// Bill is a recurring financial obligation. The anchor date never advances;
// future due dates are always derived relative to "now".
type Bill struct {
	BillDate  time.Time
	CreatedAt time.Time
	ID        string
	Name      string
	Frequency Frequency
	Amount    float64
}

// Occurrence is one projected future due date of a bill. Occurrences are
// derived on demand and never persisted.
type Occurrence struct {
	NextDueDate time.Time
	InstanceID  string
	Bill        Bill
}

// DaysUntil returns the whole days from today until the occurrence is due.
func (o Occurrence) DaysUntil(today time.Time) int {
	due := time.Date(o.NextDueDate.Year(), o.NextDueDate.Month(), o.NextDueDate.Day(), 0, 0, 0, 0, time.UTC)
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(due.Sub(from).Hours() / 24)
}
