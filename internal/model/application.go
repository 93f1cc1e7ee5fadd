package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ApplicationStatus tracks where a job application sits in its pipeline.
type ApplicationStatus string

// Application pipeline states.
const (
	StatusContacted ApplicationStatus = "Contacted"
	StatusApplied   ApplicationStatus = "Applied"
	StatusInterview ApplicationStatus = "Interview"
	StatusOffer     ApplicationStatus = "Offer"
	StatusRejected  ApplicationStatus = "Rejected"
	StatusWithdrawn ApplicationStatus = "Withdrawn"
	StatusAccepted  ApplicationStatus = "Accepted"
	StatusExpired   ApplicationStatus = "Expired"
)

// ApplicationStatuses lists every valid status in display order.
var ApplicationStatuses = []ApplicationStatus{
	StatusContacted,
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
	StatusAccepted,
	StatusExpired,
}

// ParseApplicationStatus validates a status string.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for _, status := range ApplicationStatuses {
		if strings.EqualFold(string(status), s) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid application status %q", s)
}

// JobApplication is a tracked job application. Salary is stored as entered:
// either a plain number or a "min-max" range string.
type JobApplication struct {
	DateApplied     time.Time
	CreatedAt       time.Time
	ID              string
	Company         string
	Position        string
	Status          ApplicationStatus
	Salary          string
	Currency        string
	Location        string
	URL             string
	PortalURL       string
	ResumePath      string
	CoverLetterPath string
	Description     string
	HasInterview    bool
	IsSalaryListed  bool
	HasBonus        bool
}

// SalaryValue parses the salary field into a single comparable number.
// A "min-max" range is averaged as (min+max)/2. Malformed or empty salaries
// return ok=false and contribute nothing to aggregation; they are never an
// error.
func (a JobApplication) SalaryValue() (float64, bool) {
	return ParseSalary(a.Salary)
}

// ParseSalary implements the salary grammar: a non-negative number, or a
// "min-max" pair with min <= max.
func ParseSalary(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if lo, hi, found := strings.Cut(s, "-"); found {
		minVal, err := parseAmount(lo)
		if err != nil {
			return 0, false
		}
		maxVal, err := parseAmount(hi)
		if err != nil {
			return 0, false
		}
		if minVal > maxVal {
			return 0, false
		}
		return (minVal + maxVal) / 2, true
	}

	v, err := parseAmount(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative salary %q", s)
	}
	return v, nil
}

// IsRemote reports whether the location looks like a remote position.
func (a JobApplication) IsRemote() bool {
	return strings.Contains(strings.ToLower(a.Location), "remote")
}

// IsActive reports whether the application is still in play.
func (a JobApplication) IsActive() bool {
	switch a.Status {
	case StatusContacted, StatusApplied, StatusInterview:
		return true
	default:
		return false
	}
}
