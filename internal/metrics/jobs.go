package metrics

import (
	"strings"
	"time"

	"github.com/joe5h/tally/internal/model"
)

// StatusBucket is one categorical slice of the application pipeline.
type StatusBucket struct {
	Count   int
	Percent float64
}

// MonthCount is one month's application volume for the histogram.
type MonthCount struct {
	Month time.Time // first of the month
	Count int
}

// JobSummary is the full categorical and windowed breakdown of tracked
// job applications.
type JobSummary struct {
	Total int

	Active      StatusBucket
	Rejected    StatusBucket
	Expired     StatusBucket
	Interviewed StatusBucket
	Offers      StatusBucket
	Remote      StatusBucket
	Bonus       StatusBucket
	USD         StatusBucket

	AppliedToday     int
	AppliedYesterday int
	TodayDelta       float64
	AppliedWeek      int
	AppliedLastWeek  int
	WeekDelta        float64
	AppliedMonth     int
	AppliedLastMonth int
	MonthDelta       float64

	// Salary averages over applications whose salary field parses; ranges
	// contribute their midpoint.
	AvgSalaryAll      float64
	AvgSalaryListed   float64
	SalaryDiff        float64
	SalaryDiffPercent float64

	InterviewRate float64 // interviews per application, as a percentage
	OfferRate     float64

	// WeeklyAvg is applications per week over the span from the earliest
	// application to now, never dividing by less than one week.
	WeeklyAvg float64

	// ByMonth runs from the earliest application's month through the current
	// one; months without applications appear with a zero count.
	ByMonth []MonthCount
}

// AggregateJobs computes the dashboard breakdown of a snapshot of job
// applications. Malformed salaries and zero dates contribute nothing.
func AggregateJobs(apps []model.JobApplication, now time.Time) JobSummary {
	w := ComputeWindows(now)
	s := JobSummary{Total: len(apps)}

	var salarySum, listedSum float64
	var salaryCount, listedCount, dated int
	var earliest time.Time
	byMonth := make(map[time.Time]int)

	for _, app := range apps {
		if app.IsActive() {
			s.Active.Count++
		}
		switch app.Status {
		case model.StatusRejected:
			s.Rejected.Count++
		case model.StatusExpired:
			s.Expired.Count++
		case model.StatusOffer, model.StatusAccepted:
			s.Offers.Count++
		}
		if app.HasInterview || app.Status == model.StatusInterview {
			s.Interviewed.Count++
		}
		if app.IsRemote() {
			s.Remote.Count++
		}
		if app.HasBonus {
			s.Bonus.Count++
		}
		if strings.EqualFold(app.Currency, "USD") {
			s.USD.Count++
		}

		if !app.DateApplied.IsZero() {
			switch {
			case w.Today.Contains(app.DateApplied):
				s.AppliedToday++
			case w.Yesterday.Contains(app.DateApplied):
				s.AppliedYesterday++
			}
			if w.Week.Contains(app.DateApplied) {
				s.AppliedWeek++
			} else if w.LastWeek.Contains(app.DateApplied) {
				s.AppliedLastWeek++
			}
			if w.Month.Contains(app.DateApplied) {
				s.AppliedMonth++
			} else if w.LastMonth.Contains(app.DateApplied) {
				s.AppliedLastMonth++
			}

			month := time.Date(app.DateApplied.Year(), app.DateApplied.Month(), 1, 0, 0, 0, 0, time.UTC)
			byMonth[month]++
			dated++
			if earliest.IsZero() || app.DateApplied.Before(earliest) {
				earliest = app.DateApplied
			}
		}

		if v, ok := app.SalaryValue(); ok {
			salarySum += v
			salaryCount++
			if app.IsSalaryListed {
				listedSum += v
				listedCount++
			}
		}
	}

	total := float64(s.Total)
	s.Active.Percent = SafePercent(float64(s.Active.Count), total)
	s.Rejected.Percent = SafePercent(float64(s.Rejected.Count), total)
	s.Expired.Percent = SafePercent(float64(s.Expired.Count), total)
	s.Interviewed.Percent = SafePercent(float64(s.Interviewed.Count), total)
	s.Offers.Percent = SafePercent(float64(s.Offers.Count), total)
	s.Remote.Percent = SafePercent(float64(s.Remote.Count), total)
	s.Bonus.Percent = SafePercent(float64(s.Bonus.Count), total)
	s.USD.Percent = SafePercent(float64(s.USD.Count), total)

	s.TodayDelta = PercentDelta(float64(s.AppliedToday), float64(s.AppliedYesterday))
	s.WeekDelta = PercentDelta(float64(s.AppliedWeek), float64(s.AppliedLastWeek))
	s.MonthDelta = PercentDelta(float64(s.AppliedMonth), float64(s.AppliedLastMonth))

	if salaryCount > 0 {
		s.AvgSalaryAll = salarySum / float64(salaryCount)
	}
	if listedCount > 0 {
		s.AvgSalaryListed = listedSum / float64(listedCount)
	}
	s.SalaryDiff = s.AvgSalaryListed - s.AvgSalaryAll
	if s.AvgSalaryAll != 0 {
		s.SalaryDiffPercent = s.SalaryDiff / s.AvgSalaryAll * 100
	}

	s.InterviewRate = SafePercent(float64(s.Interviewed.Count), total)
	s.OfferRate = SafePercent(float64(s.Offers.Count), total)

	if !earliest.IsZero() {
		weeks := now.Sub(earliest).Hours() / (24 * 7)
		if weeks < 1 {
			weeks = 1
		}
		s.WeeklyAvg = float64(dated) / weeks

		start := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
			s.ByMonth = append(s.ByMonth, MonthCount{Month: month, Count: byMonth[month]})
		}
	}

	return s
}
