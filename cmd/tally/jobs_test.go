package main

import (
	"testing"
	"time"

	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/view"
)

func sortableApps() []model.JobApplication {
	return []model.JobApplication{
		{Company: "Globex", Position: "Platform Engineer", Status: model.StatusOffer,
			DateApplied: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Company: "acme", Position: "SRE", Status: model.StatusApplied,
			DateApplied: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Company: "Initech", Position: "Backend Engineer", Status: model.StatusInterview,
			DateApplied: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
	}
}

func TestJobSortKey_OrdersListing(t *testing.T) {
	tests := []struct {
		field string
		desc  bool
		want  []string // expected company order
	}{
		{field: "company", want: []string{"acme", "Globex", "Initech"}},
		{field: "company", desc: true, want: []string{"Initech", "Globex", "acme"}},
		{field: "date", want: []string{"acme", "Initech", "Globex"}},
		{field: "date", desc: true, want: []string{"Globex", "Initech", "acme"}},
		{field: "position", want: []string{"Initech", "Globex", "acme"}},
	}

	for _, tt := range tests {
		key, err := jobSortKey(tt.field)
		if err != nil {
			t.Fatalf("jobSortKey(%q) error = %v", tt.field, err)
		}

		var state view.SortState
		state.Toggle(tt.field)
		if tt.desc {
			state.Toggle(tt.field)
		}

		got := view.Apply(sortableApps(), nil, key, state.Direction)
		for i, company := range tt.want {
			if got[i].Company != company {
				t.Errorf("sort %s desc=%v: row %d = %q, want %q",
					tt.field, tt.desc, i, got[i].Company, company)
			}
		}
	}
}

func TestJobSortKey_UnknownField(t *testing.T) {
	if _, err := jobSortKey("vibes"); err == nil {
		t.Error("jobSortKey() expected error for unknown field, got nil")
	}
}
