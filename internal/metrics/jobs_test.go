package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/joe5h/tally/internal/model"
)

func TestAggregateJobs_EmptyInput(t *testing.T) {
	s := AggregateJobs(nil, date(2024, time.June, 12))

	if s.Total != 0 || s.Active.Count != 0 || s.AvgSalaryAll != 0 {
		t.Errorf("AggregateJobs(nil) = %+v, want all zeros", s)
	}
	for name, v := range map[string]float64{
		"active percent":    s.Active.Percent,
		"rejected percent":  s.Rejected.Percent,
		"interview rate":    s.InterviewRate,
		"offer rate":        s.OfferRate,
		"today delta":       s.TodayDelta,
		"week delta":        s.WeekDelta,
		"month delta":       s.MonthDelta,
		"salary diff pct":   s.SalaryDiffPercent,
		"avg salary listed": s.AvgSalaryListed,
	} {
		if v != 0 {
			t.Errorf("%s = %v, want 0", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s = %v, must never be NaN or Inf", name, v)
		}
	}
}

func TestAggregateJobs_SalaryRangeMidpoint(t *testing.T) {
	apps := []model.JobApplication{
		{
			Company:        "A",
			Status:         model.StatusApplied,
			DateApplied:    date(2024, time.June, 1),
			Salary:         "100000 - 120000",
			IsSalaryListed: true,
		},
	}

	s := AggregateJobs(apps, date(2024, time.June, 12))
	if s.AvgSalaryAll != 110000 {
		t.Errorf("AvgSalaryAll = %v, want 110000", s.AvgSalaryAll)
	}
	if s.AvgSalaryListed != 110000 {
		t.Errorf("AvgSalaryListed = %v, want 110000", s.AvgSalaryListed)
	}
}

func TestAggregateJobs_MalformedSalaryIgnored(t *testing.T) {
	apps := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: date(2024, time.June, 1), Salary: "competitive"},
		{Company: "B", Status: model.StatusApplied, DateApplied: date(2024, time.June, 2), Salary: "90000"},
		{Company: "C", Status: model.StatusApplied, DateApplied: date(2024, time.June, 3), Salary: "120000 - 100000"},
	}

	s := AggregateJobs(apps, date(2024, time.June, 12))
	if s.AvgSalaryAll != 90000 {
		t.Errorf("AvgSalaryAll = %v, want 90000 (malformed entries contribute nothing)", s.AvgSalaryAll)
	}
}

func TestAggregateJobs_StatusBuckets(t *testing.T) {
	apps := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: date(2024, time.May, 1)},
		{Company: "B", Status: model.StatusInterview, DateApplied: date(2024, time.May, 2)},
		{Company: "C", Status: model.StatusRejected, DateApplied: date(2024, time.May, 3)},
		{Company: "D", Status: model.StatusOffer, DateApplied: date(2024, time.May, 4), Location: "Remote (US)"},
	}

	s := AggregateJobs(apps, date(2024, time.June, 12))
	if s.Total != 4 {
		t.Fatalf("Total = %d, want 4", s.Total)
	}
	if s.Active.Count != 2 {
		t.Errorf("Active = %d, want 2 (Applied + Interview)", s.Active.Count)
	}
	if s.Rejected.Count != 1 || s.Offers.Count != 1 {
		t.Errorf("Rejected = %d, Offers = %d, want 1 and 1", s.Rejected.Count, s.Offers.Count)
	}
	if s.Interviewed.Count != 1 {
		t.Errorf("Interviewed = %d, want 1", s.Interviewed.Count)
	}
	if s.Remote.Count != 1 || s.Remote.Percent != 25 {
		t.Errorf("Remote = %d (%v%%), want 1 (25%%)", s.Remote.Count, s.Remote.Percent)
	}
	if s.Active.Percent != 50 {
		t.Errorf("Active.Percent = %v, want 50", s.Active.Percent)
	}
}

func TestAggregateJobs_WindowedCounts(t *testing.T) {
	now := date(2024, time.June, 12) // a Wednesday
	apps := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: now},
		{Company: "B", Status: model.StatusApplied, DateApplied: now.AddDate(0, 0, -1)},
		{Company: "C", Status: model.StatusApplied, DateApplied: date(2024, time.June, 10)}, // Monday, this week
		{Company: "D", Status: model.StatusApplied, DateApplied: date(2024, time.June, 7)},  // last week
		{Company: "E", Status: model.StatusApplied, DateApplied: date(2024, time.May, 20)},  // last month
	}

	s := AggregateJobs(apps, now)
	if s.AppliedToday != 1 || s.AppliedYesterday != 1 {
		t.Errorf("today/yesterday = %d/%d, want 1/1", s.AppliedToday, s.AppliedYesterday)
	}
	if s.AppliedWeek != 3 {
		t.Errorf("AppliedWeek = %d, want 3", s.AppliedWeek)
	}
	if s.AppliedLastWeek != 1 {
		t.Errorf("AppliedLastWeek = %d, want 1", s.AppliedLastWeek)
	}
	if s.AppliedMonth != 4 || s.AppliedLastMonth != 1 {
		t.Errorf("month/last month = %d/%d, want 4/1", s.AppliedMonth, s.AppliedLastMonth)
	}
	if s.TodayDelta != 0 {
		t.Errorf("TodayDelta = %v, want 0 (1 vs 1)", s.TodayDelta)
	}
}

func TestAggregateJobs_MonthlyHistogram(t *testing.T) {
	apps := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: date(2024, time.April, 3)},
		{Company: "B", Status: model.StatusApplied, DateApplied: date(2024, time.April, 20)},
		{Company: "C", Status: model.StatusApplied, DateApplied: date(2024, time.June, 1)},
	}

	s := AggregateJobs(apps, date(2024, time.June, 12))
	if len(s.ByMonth) != 3 {
		t.Fatalf("ByMonth = %d buckets, want 3 (April through June)", len(s.ByMonth))
	}
	if !s.ByMonth[0].Month.Equal(date(2024, time.April, 1)) || s.ByMonth[0].Count != 2 {
		t.Errorf("ByMonth[0] = %+v, want April with 2", s.ByMonth[0])
	}
	if !s.ByMonth[1].Month.Equal(date(2024, time.May, 1)) || s.ByMonth[1].Count != 0 {
		t.Errorf("ByMonth[1] = %+v, want empty May with 0", s.ByMonth[1])
	}
	if !s.ByMonth[2].Month.Equal(date(2024, time.June, 1)) || s.ByMonth[2].Count != 1 {
		t.Errorf("ByMonth[2] = %+v, want June with 1", s.ByMonth[2])
	}
}

func TestAggregateJobs_WeeklyAverage(t *testing.T) {
	// Four applications over exactly four weeks.
	apps := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: date(2024, time.May, 15)},
		{Company: "B", Status: model.StatusApplied, DateApplied: date(2024, time.May, 22)},
		{Company: "C", Status: model.StatusApplied, DateApplied: date(2024, time.May, 29)},
		{Company: "D", Status: model.StatusApplied, DateApplied: date(2024, time.June, 5)},
	}

	s := AggregateJobs(apps, date(2024, time.June, 12))
	if s.WeeklyAvg != 1 {
		t.Errorf("WeeklyAvg = %v, want 1 (4 applications over 4 weeks)", s.WeeklyAvg)
	}

	// A span shorter than one week never inflates the average.
	recent := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: date(2024, time.May, 15)},
		{Company: "B", Status: model.StatusApplied, DateApplied: date(2024, time.May, 16)},
	}
	s = AggregateJobs(recent, date(2024, time.May, 18))
	if s.WeeklyAvg != 2 {
		t.Errorf("WeeklyAvg = %v, want 2 (2 applications, sub-week span clamped)", s.WeeklyAvg)
	}
}

func TestAggregateJobs_Characteristics(t *testing.T) {
	apps := []model.JobApplication{
		{Company: "A", Status: model.StatusApplied, DateApplied: date(2024, time.June, 1), Currency: "USD", HasBonus: true},
		{Company: "B", Status: model.StatusApplied, DateApplied: date(2024, time.June, 2), Currency: "usd"},
		{Company: "C", Status: model.StatusApplied, DateApplied: date(2024, time.June, 3), Currency: "EUR"},
		{Company: "D", Status: model.StatusApplied, DateApplied: date(2024, time.June, 4), Currency: "USD", HasBonus: true},
	}

	s := AggregateJobs(apps, date(2024, time.June, 12))
	if s.Bonus.Count != 2 || s.Bonus.Percent != 50 {
		t.Errorf("Bonus = %d (%v%%), want 2 (50%%)", s.Bonus.Count, s.Bonus.Percent)
	}
	if s.USD.Count != 3 || s.USD.Percent != 75 {
		t.Errorf("USD = %d (%v%%), want 3 (75%%)", s.USD.Count, s.USD.Percent)
	}
}
