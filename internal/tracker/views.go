package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/model"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(cli.PrimaryColor).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(cli.PrimaryColor)
	clockStyle    = lipgloss.NewStyle().Foreground(cli.SuccessColor).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(cli.SubtleColor)
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return cli.ErrorStyle.Render(m.err.Error()) + "\n"
		}
		return ""
	}

	switch m.state {
	case StateLoading:
		return fmt.Sprintf("\n %s Loading...\n", m.spin.View())
	case StatePickProject:
		return m.renderPicker("Pick a project", projectLines(m.projects), m.cursor)
	case StatePickTask:
		title := "Pick a task"
		if m.project != nil {
			title = fmt.Sprintf("Pick a task in %s", m.project.Name)
		}
		return m.renderPicker(title, taskLines(m.tasks), m.cursor)
	case StateDescribe:
		return m.renderDescribe()
	case StateRunning:
		return m.renderRunning()
	case StateReview:
		return m.renderReview()
	case StateDone:
		return cli.SuccessStyle.Render(
			fmt.Sprintf("Saved %.2fh on %s", m.saved.Duration, m.task.Name)) + "\n"
	}
	return ""
}

func (m Model) renderPicker(title string, lines []string, cursor int) string {
	var b strings.Builder
	b.WriteString("\n " + cli.TitleStyle.Render(title) + "\n")

	if len(lines) == 0 {
		b.WriteString(" " + cli.SubtleStyle.Render("nothing here yet") + "\n")
	}
	for i, line := range lines {
		if i == cursor {
			b.WriteString(" " + cursorStyle.Render("> ") + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}

	b.WriteString("\n " + helpStyle.Render(helpLine(m.keymap.ShortHelp())) + "\n")
	return b.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderDescribe() string {
	var b strings.Builder
	b.WriteString("\n " + cli.TitleStyle.Render(fmt.Sprintf("%s / %s", m.project.Name, m.task.Name)) + "\n")
	b.WriteString(" " + m.description.View() + "\n")
	b.WriteString("\n " + helpStyle.Render("Enter start the clock · Esc back") + "\n")
	return b.String()
}

func (m Model) renderRunning() string {
	elapsed := time.Since(m.startedAt).Round(time.Second)

	var b strings.Builder
	b.WriteString("\n " + cli.TitleStyle.Render(fmt.Sprintf("%s / %s", m.project.Name, m.task.Name)) + "\n")
	if desc := m.description.Value(); desc != "" {
		b.WriteString(" " + cli.SubtleStyle.Render(desc) + "\n")
	}
	b.WriteString("\n " + clockStyle.Render(formatElapsed(elapsed)) + "\n")
	b.WriteString("\n " + helpStyle.Render("Space stop · Ctrl+C abandon") + "\n")
	return b.String()
}

func (m Model) renderReview() string {
	duration := model.DurationBetween(m.startInput.Value(), m.endInput.Value())

	var b strings.Builder
	b.WriteString("\n " + cli.TitleStyle.Render("Review entry") + "\n")
	b.WriteString(fmt.Sprintf(" Start %s  End %s\n", m.startInput.View(), m.endInput.View()))
	b.WriteString(fmt.Sprintf(" Rounded to %s\n", cli.BoldStyle.Render(fmt.Sprintf("%.2fh", duration))))
	if m.err != nil {
		b.WriteString(" " + cli.ErrorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n " + helpStyle.Render("Tab switch field · Enter save · d discard · Esc resume") + "\n")
	return b.String()
}

func projectLines(projects []model.Project) []string {
	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = p.Name
		if p.Description != "" {
			lines[i] += "  " + helpStyle.Render(p.Description)
		}
	}
	return lines
}

func taskLines(tasks []model.Task) []string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = t.Name
		if t.Description != "" {
			lines[i] += "  " + helpStyle.Render(t.Description)
		}
	}
	return lines
}

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
