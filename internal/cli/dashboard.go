package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/joe5h/tally/internal/metrics"
	"github.com/joe5h/tally/internal/model"
)

// Dashboard is everything the dashboard command renders in one refresh.
type Dashboard struct {
	Time         metrics.TimeSummary
	Jobs         metrics.JobSummary
	Transactions metrics.TransactionSummary
	Upcoming     []model.Occurrence
	Now          time.Time
}

// RenderDashboard prints the full dashboard as a set of panels.
func RenderDashboard(w io.Writer, d Dashboard) {
	fmt.Fprintln(w, TitleStyle.Render("Dashboard")+SubtleStyle.Render("  "+d.Now.Format("Mon Jan 2 15:04")))

	timePanel := panel("Time Tracked", []string{
		statLine("Today", fmt.Sprintf("%.2fh", d.Time.Today), d.Time.TodayDelta),
		statLine("This week", fmt.Sprintf("%.2fh", d.Time.Week), d.Time.WeekDelta),
		statLine("This month", fmt.Sprintf("%.2fh", d.Time.Month), d.Time.MonthDelta),
		fmt.Sprintf("%-12s %s", "This year", BoldStyle.Render(fmt.Sprintf("%.2fh", d.Time.Year))),
	})

	jobsPanel := panel("Job Applications", []string{
		fmt.Sprintf("%-12s %s", "Total", BoldStyle.Render(fmt.Sprintf("%d", d.Jobs.Total))),
		fmt.Sprintf("%-12s %s (%.0f%%)", "Active", BoldStyle.Render(fmt.Sprintf("%d", d.Jobs.Active.Count)), d.Jobs.Active.Percent),
		fmt.Sprintf("%-12s %d (%.0f%%)", "Interviews", d.Jobs.Interviewed.Count, d.Jobs.Interviewed.Percent),
		fmt.Sprintf("%-12s %d (%.0f%%)", "Offers", d.Jobs.Offers.Count, d.Jobs.Offers.Percent),
		statLine("This week", fmt.Sprintf("%d", d.Jobs.AppliedWeek), d.Jobs.WeekDelta),
	})

	spendPanel := panel("Spending", []string{
		statLine("Today", money(d.Transactions.SpentToday), d.Transactions.TodayDelta),
		statLine("This week", money(d.Transactions.SpentWeek), d.Transactions.WeekDelta),
		statLine("This month", money(d.Transactions.SpentMonth), d.Transactions.MonthDelta),
		fmt.Sprintf("%-12s %s", "Net month", BoldStyle.Render(money(d.Transactions.NetMonth))),
	})

	var billLines []string
	for _, occ := range d.Upcoming {
		line := fmt.Sprintf("%s  %-20s %s",
			occ.NextDueDate.Format("Jan 02"),
			truncate(occ.Bill.Name, 20),
			money(occ.Bill.Amount))
		if occ.DaysUntil(d.Now) <= 3 {
			line = WarningStyle.Render(line)
		}
		billLines = append(billLines, line)
	}
	if len(billLines) == 0 {
		billLines = []string{SubtleStyle.Render("no bills tracked")}
	}
	billsPanel := panel("Upcoming Bills", billLines)

	top := lipgloss.JoinHorizontal(lipgloss.Top, timePanel, " ", jobsPanel)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, spendPanel, " ", billsPanel)
	fmt.Fprintln(w, top)
	fmt.Fprintln(w, bottom)
}

func panel(title string, lines []string) string {
	content := BoldStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return BoxStyle.Render(content)
}

func statLine(label, value string, delta float64) string {
	return fmt.Sprintf("%-12s %s %s", label, BoldStyle.Render(value), Delta(delta))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
