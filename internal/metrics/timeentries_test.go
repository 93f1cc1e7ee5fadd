package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/joe5h/tally/internal/model"
)

func TestAggregateTime_EmptyInput(t *testing.T) {
	s := AggregateTime(nil, date(2024, time.June, 12))

	if s.Today != 0 || s.Week != 0 || s.Month != 0 || s.Year != 0 {
		t.Errorf("AggregateTime(nil) = %+v, want all zeros", s)
	}
	for _, v := range []float64{s.TodayDelta, s.WeekDelta, s.MonthDelta} {
		if v != 0 || math.IsNaN(v) {
			t.Errorf("delta = %v, want 0", v)
		}
	}
	if len(s.ByProjectWeek) != 0 || len(s.ByProjectMonth) != 0 {
		t.Errorf("project breakdowns = %v / %v, want empty", s.ByProjectWeek, s.ByProjectMonth)
	}
}

func TestAggregateTime_Windows(t *testing.T) {
	now := date(2024, time.June, 12) // Wednesday
	entries := []model.TimeEntry{
		{WorkDate: now, Duration: 2, ProjectID: "p1", ProjectName: "Garden"},
		{WorkDate: now.AddDate(0, 0, -1), Duration: 1, ProjectID: "p1", ProjectName: "Garden"},
		{WorkDate: date(2024, time.June, 10), Duration: 4, ProjectID: "p2", ProjectName: "Homelab"},
		{WorkDate: date(2024, time.June, 5), Duration: 3, ProjectID: "p2", ProjectName: "Homelab"}, // last week
		{WorkDate: date(2024, time.May, 2), Duration: 8, ProjectID: "p1", ProjectName: "Garden"},   // last month
		{WorkDate: date(2023, time.December, 30), Duration: 5},                                     // prior year
	}

	s := AggregateTime(entries, now)
	if s.Today != 2 || s.Yesterday != 1 {
		t.Errorf("today/yesterday = %v/%v, want 2/1", s.Today, s.Yesterday)
	}
	if s.Week != 7 { // 2 + 1 + 4
		t.Errorf("Week = %v, want 7", s.Week)
	}
	if s.LastWeek != 3 {
		t.Errorf("LastWeek = %v, want 3", s.LastWeek)
	}
	if s.Month != 7 || s.LastMonth != 8 {
		t.Errorf("month/last month = %v/%v, want 7/8", s.Month, s.LastMonth)
	}
	if s.Year != 18 { // everything but the December entry
		t.Errorf("Year = %v, want 18", s.Year)
	}
	if s.TodayDelta != 100 {
		t.Errorf("TodayDelta = %v, want 100", s.TodayDelta)
	}
}

func TestAggregateTime_ProjectDistribution(t *testing.T) {
	now := date(2024, time.June, 12)
	entries := []model.TimeEntry{
		{WorkDate: now, Duration: 6, ProjectID: "p1", ProjectName: "Garden"},
		{WorkDate: now, Duration: 2, ProjectID: "p2", ProjectName: "Homelab"},
		{WorkDate: now, Duration: 2, ProjectID: ""}, // orphaned entry
	}

	s := AggregateTime(entries, now)
	if len(s.ByProjectWeek) != 3 {
		t.Fatalf("ByProjectWeek = %d projects, want 3", len(s.ByProjectWeek))
	}
	top := s.ByProjectWeek[0]
	if top.ProjectName != "Garden" || top.Hours != 6 || top.Percent != 60 {
		t.Errorf("top project = %+v, want Garden 6h 60%%", top)
	}

	var orphan *ProjectHours
	for i := range s.ByProjectWeek {
		if s.ByProjectWeek[i].ProjectID == "" {
			orphan = &s.ByProjectWeek[i]
		}
	}
	if orphan == nil || orphan.ProjectName != "Unknown" {
		t.Errorf("orphaned entries should aggregate under %q, got %+v", "Unknown", orphan)
	}
}
