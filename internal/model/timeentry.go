package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeEntry records hours worked against a task on a specific date. TaskID is
// a non-owning reference: the task may be deleted independently, in which
// case the joined names fall back to "Unknown" at the presentation boundary.
type TimeEntry struct {
	WorkDate    time.Time
	CreatedAt   time.Time
	ID          string
	TaskID      string
	StartTime   string // "HH:MM", empty when the entry was keyed in directly
	EndTime     string
	Description string
	Duration    float64 // hours, always a multiple of 0.25 when derived

	// Joined for display; empty when the referenced rows are gone.
	TaskName    string
	ProjectID   string
	ProjectName string
}

// ParseClock parses an "HH:MM" clock time into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// DurationBetween computes the hours between two clock times rounded to the
// nearest quarter hour. Spans where the end precedes the start are treated as
// crossing midnight. Returns 0 when either time is missing or malformed.
func DurationBetween(startTime, endTime string) float64 {
	if startTime == "" || endTime == "" {
		return 0
	}
	start, err := ParseClock(startTime)
	if err != nil {
		return 0
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return 0
	}

	minutes := end - start
	if minutes < 0 {
		minutes += 24 * 60
	}

	return RoundToQuarterHour(float64(minutes) / 60)
}

// RoundToQuarterHour rounds hours to the nearest multiple of 0.25, halves up.
// 50 minutes (0.8333h) rounds to 0.75, not 1.0.
func RoundToQuarterHour(hours float64) float64 {
	return math.Round(hours*4) / 4
}
