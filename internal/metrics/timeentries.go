package metrics

import (
	"sort"
	"time"

	"github.com/joe5h/tally/internal/model"
)

// ProjectHours is one project's share of a window's tracked time.
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	Hours       float64
	Percent     float64
}

// TimeSummary is the windowed view of tracked hours.
type TimeSummary struct {
	Today          float64
	Yesterday      float64
	TodayDelta     float64
	Week           float64
	LastWeek       float64
	WeekDelta      float64
	Month          float64
	LastMonth      float64
	MonthDelta     float64
	Year           float64
	ByProjectWeek  []ProjectHours
	ByProjectMonth []ProjectHours
}

// AggregateTime computes windowed hour totals and per-project distributions
// from a snapshot of time entries. Entries with a zero work date contribute
// nothing.
func AggregateTime(entries []model.TimeEntry, now time.Time) TimeSummary {
	w := ComputeWindows(now)
	var s TimeSummary

	weekProjects := make(map[string]*ProjectHours)
	monthProjects := make(map[string]*ProjectHours)

	for _, e := range entries {
		if e.WorkDate.IsZero() {
			continue
		}
		switch {
		case w.Today.Contains(e.WorkDate):
			s.Today += e.Duration
		case w.Yesterday.Contains(e.WorkDate):
			s.Yesterday += e.Duration
		}
		if w.Week.Contains(e.WorkDate) {
			s.Week += e.Duration
			accumulateProject(weekProjects, e)
		} else if w.LastWeek.Contains(e.WorkDate) {
			s.LastWeek += e.Duration
		}
		if w.Month.Contains(e.WorkDate) {
			s.Month += e.Duration
			accumulateProject(monthProjects, e)
		} else if w.LastMonth.Contains(e.WorkDate) {
			s.LastMonth += e.Duration
		}
		if w.Year.Contains(e.WorkDate) {
			s.Year += e.Duration
		}
	}

	s.TodayDelta = PercentDelta(s.Today, s.Yesterday)
	s.WeekDelta = PercentDelta(s.Week, s.LastWeek)
	s.MonthDelta = PercentDelta(s.Month, s.LastMonth)
	s.ByProjectWeek = rankProjects(weekProjects, s.Week)
	s.ByProjectMonth = rankProjects(monthProjects, s.Month)
	return s
}

func accumulateProject(acc map[string]*ProjectHours, e model.TimeEntry) {
	name := e.ProjectName
	if name == "" {
		name = "Unknown"
	}
	p, ok := acc[e.ProjectID]
	if !ok {
		p = &ProjectHours{ProjectID: e.ProjectID, ProjectName: name}
		acc[e.ProjectID] = p
	}
	p.Hours += e.Duration
}

func rankProjects(acc map[string]*ProjectHours, total float64) []ProjectHours {
	ranked := make([]ProjectHours, 0, len(acc))
	for _, p := range acc {
		p.Percent = SafePercent(p.Hours, total)
		ranked = append(ranked, *p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Hours != ranked[j].Hours {
			return ranked[i].Hours > ranked[j].Hours
		}
		return ranked[i].ProjectName < ranked[j].ProjectName
	})
	return ranked
}
