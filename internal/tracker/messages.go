package tracker

import (
	"time"

	"github.com/joe5h/tally/internal/model"
)

// projectsLoadedMsg carries the open projects for the picker.
type projectsLoadedMsg struct {
	projects []model.Project
}

// tasksLoadedMsg carries the selected project's tasks.
type tasksLoadedMsg struct {
	tasks []model.Task
}

// tickMsg drives the running stopwatch display.
type tickMsg time.Time

// savedMsg signals that the entry was written.
type savedMsg struct {
	entry model.TimeEntry
}

// errorMsg carries a failed command's error.
type errorMsg struct {
	err error
}
