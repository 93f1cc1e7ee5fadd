package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/service"
)

// State represents the current screen of the tracker.
type State int

const (
	StateLoading State = iota
	StatePickProject
	StatePickTask
	StateDescribe
	StateRunning
	StateReview
	StateDone
)

// Model holds the tracker TUI state. The flow is linear: pick a project,
// pick a task, describe the work, run the stopwatch, then review and save.
type Model struct {
	startedAt time.Time
	stoppedAt time.Time

	ctx     context.Context
	storage service.Storage
	err     error

	project *model.Project
	task    *model.Task

	projects []model.Project
	tasks    []model.Task

	keymap      KeyMap
	spin        spinner.Model
	description textinput.Model
	startInput  textinput.Model
	endInput    textinput.Model

	saved model.TimeEntry

	cursor      int
	reviewField int
	width       int
	height      int
	state       State
	quitting    bool
}

func newModel(ctx context.Context, storage service.Storage) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	desc := textinput.New()
	desc.Placeholder = "What are you working on?"
	desc.CharLimit = 200

	start := textinput.New()
	start.CharLimit = 5
	start.Width = 7

	end := textinput.New()
	end.CharLimit = 5
	end.Width = 7

	return Model{
		ctx:         ctx,
		storage:     storage,
		keymap:      DefaultKeyMap(),
		spin:        sp,
		description: desc,
		startInput:  start,
		endInput:    end,
		state:       StateLoading,
	}
}

// Init starts the spinner and loads the project list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadProjects())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case projectsLoadedMsg:
		m.projects = msg.projects
		m.cursor = 0
		m.state = StatePickProject
		return m, nil

	case tasksLoadedMsg:
		m.tasks = msg.tasks
		m.cursor = 0
		m.state = StatePickTask
		return m, nil

	case savedMsg:
		m.saved = msg.entry
		m.state = StateDone
		return m, tea.Quit

	case errorMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit

	case tickMsg:
		if m.state == StateRunning {
			return m, tick()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StatePickProject:
		return m.updatePickProject(msg)
	case StatePickTask:
		return m.updatePickTask(msg)
	case StateDescribe:
		return m.updateDescribe(msg)
	case StateRunning:
		return m.updateRunning(msg)
	case StateReview:
		return m.updateReview(msg)
	}

	return m, nil
}

func (m Model) updatePickProject(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j", "down":
		if m.cursor < len(m.projects)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.projects) == 0 {
			return m, nil
		}
		p := m.projects[m.cursor]
		m.project = &p
		m.state = StateLoading
		return m, m.loadTasks(p.ID)
	}
	return m, nil
}

func (m Model) updatePickTask(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.state = StatePickProject
		m.cursor = 0
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		m.task = &t
		m.state = StateDescribe
		m.description.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateDescribe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.description.Blur()
			m.state = StatePickTask
			return m, nil
		case "enter":
			m.description.Blur()
			m.startedAt = time.Now()
			m.state = StateRunning
			return m, tick()
		}
	}

	var cmd tea.Cmd
	m.description, cmd = m.description.Update(msg)
	return m, cmd
}

func (m Model) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case " ", "enter":
		m.stoppedAt = time.Now()
		m.startInput.SetValue(m.startedAt.Format("15:04"))
		m.endInput.SetValue(m.stoppedAt.Format("15:04"))
		m.startInput.Focus()
		m.reviewField = 0
		m.state = StateReview
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			// Back to the stopwatch as if it never stopped.
			m.state = StateRunning
			return m, tick()
		case "d":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.reviewField = (m.reviewField + 1) % 2
			if m.reviewField == 0 {
				m.startInput.Focus()
				m.endInput.Blur()
			} else {
				m.startInput.Blur()
				m.endInput.Focus()
			}
			return m, textinput.Blink
		case "enter":
			duration := model.DurationBetween(m.startInput.Value(), m.endInput.Value())
			if duration == 0 {
				m.err = fmt.Errorf("times must be HH:MM and at least 8 minutes apart")
				return m, nil
			}
			m.err = nil
			return m, m.saveEntry(duration)
		}
	}

	var cmd tea.Cmd
	if m.reviewField == 0 {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

func (m Model) loadProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.storage.GetOpenProjects(m.ctx)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to load projects: %w", err)}
		}
		return projectsLoadedMsg{projects: projects}
	}
}

func (m Model) loadTasks(projectID string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.storage.GetTasks(m.ctx, projectID)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to load tasks: %w", err)}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m Model) saveEntry(duration float64) tea.Cmd {
	entry := model.TimeEntry{
		TaskID:      m.task.ID,
		WorkDate:    dateOnly(m.startedAt),
		StartTime:   m.startInput.Value(),
		EndTime:     m.endInput.Value(),
		Duration:    duration,
		Description: m.description.Value(),
	}
	return func() tea.Msg {
		if err := m.storage.SaveTimeEntry(m.ctx, &entry); err != nil {
			return errorMsg{err: fmt.Errorf("failed to save entry: %w", err)}
		}
		return savedMsg{entry: entry}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
