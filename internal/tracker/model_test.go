package tracker

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe5h/tally/internal/model"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newModel(context.Background(), nil)

	updated, _ := m.Update(projectsLoadedMsg{projects: []model.Project{
		{ID: "p1", Name: "Infra"},
		{ID: "p2", Name: "Website"},
	}})
	return updated.(Model)
}

func TestPickerNavigationClamps(t *testing.T) {
	m := loadedModel(t)
	if m.state != StatePickProject {
		t.Fatalf("state = %d, want StatePickProject", m.state)
	}

	// Up at the top stays put.
	updated, _ := m.Update(keyRune('k'))
	m = updated.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}

	// Down past the end stays on the last row.
	for range 5 {
		updated, _ = m.Update(keyRune('j'))
		m = updated.(Model)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d after repeated down, want 1", m.cursor)
	}
}

func TestSelectingProjectLoadsTasks(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.state != StateLoading {
		t.Errorf("state = %d after select, want StateLoading", m.state)
	}
	if cmd == nil {
		t.Error("expected a task-loading command")
	}
	if m.project == nil || m.project.ID != "p1" {
		t.Errorf("selected project = %+v, want p1", m.project)
	}

	updated, _ = m.Update(tasksLoadedMsg{tasks: []model.Task{{ID: "t1", Name: "Deploy"}}})
	m = updated.(Model)
	if m.state != StatePickTask {
		t.Errorf("state = %d after tasks load, want StatePickTask", m.state)
	}
}

func TestEmptyPickerIgnoresSelect(t *testing.T) {
	m := newModel(context.Background(), nil)
	updated, _ := m.Update(projectsLoadedMsg{})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.state != StatePickProject || cmd != nil {
		t.Errorf("select on empty picker changed state to %d", m.state)
	}
}

func startedModel(t *testing.T) Model {
	t.Helper()
	m := loadedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(tasksLoadedMsg{tasks: []model.Task{{ID: "t1", Name: "Deploy"}}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.state != StateDescribe {
		t.Fatalf("state = %d, want StateDescribe", m.state)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestDescribeEnterStartsClock(t *testing.T) {
	m := startedModel(t)
	if m.state != StateRunning {
		t.Fatalf("state = %d, want StateRunning", m.state)
	}
	if m.startedAt.IsZero() {
		t.Error("startedAt not set when the clock started")
	}
}

func TestStopPrefillsReviewTimes(t *testing.T) {
	m := startedModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if m.state != StateReview {
		t.Fatalf("state = %d, want StateReview", m.state)
	}
	if m.startInput.Value() == "" || m.endInput.Value() == "" {
		t.Error("review times not prefilled from the stopwatch")
	}
	if _, err := model.ParseClock(m.startInput.Value()); err != nil {
		t.Errorf("prefilled start %q is not HH:MM: %v", m.startInput.Value(), err)
	}
}

func TestReviewRejectsZeroDuration(t *testing.T) {
	m := startedModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	// Identical times round to zero and must not save.
	m.startInput.SetValue("09:00")
	m.endInput.SetValue("09:00")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil {
		t.Error("zero-duration review produced a save command")
	}
	if m.err == nil {
		t.Error("expected a validation error for zero duration")
	}
	if m.state != StateReview {
		t.Errorf("state = %d, want to stay in StateReview", m.state)
	}
}

func TestSavedEntryQuits(t *testing.T) {
	m := startedModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)

	entry := model.TimeEntry{TaskID: "t1", Duration: 1.5, WorkDate: time.Now()}
	updated, cmd := m.Update(savedMsg{entry: entry})
	m = updated.(Model)
	if m.state != StateDone {
		t.Errorf("state = %d after save, want StateDone", m.state)
	}
	if cmd == nil {
		t.Error("expected quit command after save")
	}
	if m.saved.Duration != 1.5 {
		t.Errorf("saved duration = %v, want 1.5", m.saved.Duration)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		want string
		d    time.Duration
	}{
		{"00:00:05", 5 * time.Second},
		{"00:01:30", 90 * time.Second},
		{"01:00:00", time.Hour},
		{"25:00:00", 25 * time.Hour},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
