// Package cli provides styled terminal output for the dashboard commands.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#8BE9FD")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#50FA7B")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F1FA8C")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF5555")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered dashboard panels.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2)
)

// Delta renders a percentage delta with an up or down marker, colored by
// direction.
func Delta(pct float64) string {
	switch {
	case pct > 0:
		return SuccessStyle.Render(fmt.Sprintf("▲ %.1f%%", pct))
	case pct < 0:
		return ErrorStyle.Render(fmt.Sprintf("▼ %.1f%%", -pct))
	default:
		return SubtleStyle.Render("0%")
	}
}
