package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/joe5h/tally/internal/metrics"
	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/service"
	"github.com/joe5h/tally/internal/suggest"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	return t
}

func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// RenderBills prints the bill list.
func RenderBills(w io.Writer, bills []model.Bill) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Amount", "Frequency", "Anchor Date"})
	for _, bill := range bills {
		t.AppendRow(table.Row{
			shortID(bill.ID),
			bill.Name,
			money(bill.Amount),
			bill.Frequency,
			bill.BillDate.Format(dateLayout),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	t.Render()
}

// RenderUpcoming prints projected bill occurrences with a days-until column.
func RenderUpcoming(w io.Writer, occurrences []model.Occurrence, today time.Time) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Due", "In", "Name", "Amount"})
	var total float64
	for _, occ := range occurrences {
		days := occ.DaysUntil(today)
		in := fmt.Sprintf("%d days", days)
		switch days {
		case 0:
			in = WarningStyle.Render("today")
		case 1:
			in = "tomorrow"
		}
		t.AppendRow(table.Row{
			occ.NextDueDate.Format(dateLayout),
			in,
			occ.Bill.Name,
			money(occ.Bill.Amount),
		})
		total += occ.Bill.Amount
	}
	t.AppendFooter(table.Row{"", "", text.Bold.Sprint("Total"), text.Bold.Sprint(money(total))})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})
	t.Render()
}

// RenderProjects prints the project list with status coloring.
func RenderProjects(w io.Writer, projects []model.Project) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Status", "Description"})
	for _, p := range projects {
		status := SuccessStyle.Render(string(p.Status))
		if p.Status == model.ProjectClosed {
			status = SubtleStyle.Render(string(p.Status))
		}
		t.AppendRow(table.Row{shortID(p.ID), p.Name, status, p.Description})
	}
	t.Render()
}

// RenderTasks prints a project's tasks.
func RenderTasks(w io.Writer, tasks []model.Task) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Description"})
	for _, task := range tasks {
		t.AppendRow(table.Row{shortID(task.ID), task.Name, task.Description})
	}
	t.Render()
}

// RenderTimeEntries prints time entries with joined task and project names.
func RenderTimeEntries(w io.Writer, entries []model.TimeEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Date", "Project", "Task", "Start", "End", "Hours", "Description"})
	var total float64
	for _, e := range entries {
		t.AppendRow(table.Row{
			shortID(e.ID),
			e.WorkDate.Format(dateLayout),
			orUnknown(e.ProjectName),
			orUnknown(e.TaskName),
			e.StartTime,
			e.EndTime,
			fmt.Sprintf("%.2f", e.Duration),
			e.Description,
		})
		total += e.Duration
	}
	t.AppendFooter(table.Row{"", "", "", "", "", text.Bold.Sprint("Total"), text.Bold.Sprintf("%.2f", total), ""})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 7, Align: text.AlignRight}})
	t.Render()
}

// RenderApplications prints job applications.
func RenderApplications(w io.Writer, apps []model.JobApplication) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Company", "Position", "Status", "Applied", "Location", "Salary"})
	for _, app := range apps {
		status := string(app.Status)
		switch app.Status {
		case model.StatusOffer, model.StatusAccepted:
			status = SuccessStyle.Render(status)
		case model.StatusRejected, model.StatusExpired, model.StatusWithdrawn:
			status = SubtleStyle.Render(status)
		case model.StatusInterview:
			status = WarningStyle.Render(status)
		}
		applied := ""
		if !app.DateApplied.IsZero() {
			applied = app.DateApplied.Format(dateLayout)
		}
		t.AppendRow(table.Row{
			shortID(app.ID), app.Company, app.Position, status, applied, app.Location, app.Salary,
		})
	}
	t.Render()
}

// RenderTransactions prints transactions with joined lookup names.
func RenderTransactions(w io.Writer, txns []model.Transaction) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Date", "Description", "Type", "Method", "Amount"})
	var net float64
	for _, txn := range txns {
		amount := money(txn.Amount)
		if txn.Amount < 0 {
			amount = ErrorStyle.Render(amount)
		} else {
			amount = SuccessStyle.Render(amount)
		}
		t.AppendRow(table.Row{
			shortID(txn.ID),
			txn.TransactionDate.Format(dateLayout),
			txn.Description,
			txn.TypeName,
			txn.PaymentMethodName,
			amount,
		})
		net += txn.Amount
	}
	t.AppendFooter(table.Row{"", "", "", "", text.Bold.Sprint("Net"), text.Bold.Sprint(money(net))})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 6, Align: text.AlignRight}})
	t.Render()
}

// RenderSuggestions prints detected recurring payment candidates.
func RenderSuggestions(w io.Writer, candidates []suggest.Candidate) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Avg", "Range", "Day", "Months", "Last Seen"})
	for _, c := range candidates {
		amountRange := money(c.MinAmount)
		if c.MinAmount != c.MaxAmount {
			amountRange = fmt.Sprintf("%s - %s", money(c.MinAmount), money(c.MaxAmount))
		}
		t.AppendRow(table.Row{
			c.Name,
			money(c.AvgAmount),
			amountRange,
			fmt.Sprintf("~%d", c.TypicalDay),
			c.MonthCount,
			c.LastSeen.Format(dateLayout),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// RenderDriveFiles prints cloud drive listings.
func RenderDriveFiles(w io.Writer, files []service.DriveFile) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Link"})
	for _, f := range files {
		t.AppendRow(table.Row{f.ID, f.Name, f.WebViewLink})
	}
	t.Render()
}

// RenderProjectHours prints a per-project hours distribution.
func RenderProjectHours(w io.Writer, title string, rows []metrics.ProjectHours) {
	fmt.Fprintln(w, TitleStyle.Render(title))
	t := newTable(w)
	t.AppendHeader(table.Row{"Project", "Hours", "Share"})
	for _, row := range rows {
		t.AppendRow(table.Row{
			row.ProjectName,
			fmt.Sprintf("%.2f", row.Hours),
			fmt.Sprintf("%.1f%%", row.Percent),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
