package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/config"
	"github.com/joe5h/tally/internal/jobcsv"
	"github.com/joe5h/tally/internal/launcher"
	"github.com/joe5h/tally/internal/metrics"
	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/view"
)

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Track job applications",
	}

	cmd.AddCommand(addJobCmd())
	cmd.AddCommand(listJobsCmd())
	cmd.AddCommand(editJobCmd())
	cmd.AddCommand(deleteJobCmd())
	cmd.AddCommand(jobStatsCmd())
	cmd.AddCommand(importJobsCmd())
	cmd.AddCommand(exportJobsCmd())
	cmd.AddCommand(clearJobsCmd())
	cmd.AddCommand(openJobCmd())

	return cmd
}

// jobFlags are the editable application fields shared by add and edit.
type jobFlags struct {
	status       string
	dateStr      string
	location     string
	salary       string
	currency     string
	url          string
	portalURL    string
	resume       string
	coverLetter  string
	description  string
	hasInterview bool
	salaryListed bool
	hasBonus     bool
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "pipeline status (Contacted, Applied, Interview, Offer, Rejected, Withdrawn, Accepted, Expired)")
	cmd.Flags().StringVarP(&f.dateStr, "date", "d", "", "date applied (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "location, e.g. \"Remote\" or \"Berlin\"")
	cmd.Flags().StringVar(&f.salary, "salary", "", "salary, plain number or \"min-max\" range")
	cmd.Flags().StringVar(&f.currency, "currency", "", "salary currency (default USD)")
	cmd.Flags().StringVar(&f.url, "url", "", "job posting URL")
	cmd.Flags().StringVar(&f.portalURL, "portal-url", "", "application portal URL")
	cmd.Flags().StringVar(&f.resume, "resume", "", "path to the resume used")
	cmd.Flags().StringVar(&f.coverLetter, "cover-letter", "", "path to the cover letter used")
	cmd.Flags().StringVarP(&f.description, "description", "m", "", "free-form notes")
	cmd.Flags().BoolVar(&f.hasInterview, "interviewed", false, "an interview happened")
	cmd.Flags().BoolVar(&f.salaryListed, "salary-listed", false, "the salary was listed in the posting")
	cmd.Flags().BoolVar(&f.hasBonus, "bonus", false, "the position includes a bonus")
}

// apply copies set flags onto the application. Only flags the user actually
// changed are applied, so edit leaves untouched fields alone.
func (f *jobFlags) apply(cmd *cobra.Command, app *model.JobApplication) error {
	if f.status != "" {
		status, err := model.ParseApplicationStatus(f.status)
		if err != nil {
			return err
		}
		app.Status = status
	}
	if f.dateStr != "" {
		date, err := parseDate(f.dateStr)
		if err != nil {
			return err
		}
		app.DateApplied = date
	}
	if f.location != "" {
		app.Location = f.location
	}
	if f.salary != "" {
		if _, ok := model.ParseSalary(f.salary); !ok {
			return fmt.Errorf("invalid salary %q (want a number or min-max range)", f.salary)
		}
		app.Salary = f.salary
	}
	if f.currency != "" {
		app.Currency = f.currency
	}
	if f.url != "" {
		app.URL = f.url
	}
	if f.portalURL != "" {
		app.PortalURL = f.portalURL
	}
	if f.resume != "" {
		app.ResumePath = f.resume
	}
	if f.coverLetter != "" {
		app.CoverLetterPath = f.coverLetter
	}
	if f.description != "" {
		app.Description = f.description
	}
	if cmd.Flags().Changed("interviewed") {
		app.HasInterview = f.hasInterview
	}
	if cmd.Flags().Changed("salary-listed") {
		app.IsSalaryListed = f.salaryListed
	}
	if cmd.Flags().Changed("bonus") {
		app.HasBonus = f.hasBonus
	}
	return nil
}

func addJobCmd() *cobra.Command {
	var flags jobFlags

	cmd := &cobra.Command{
		Use:   "add <company> <position>",
		Short: "Add a job application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app := &model.JobApplication{
				Company:     args[0],
				Position:    args[1],
				Status:      model.StatusApplied,
				DateApplied: today(),
			}
			if err := flags.apply(cmd, app); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveApplication(ctx, app); err != nil {
				return fmt.Errorf("failed to save application: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added application: %s at %s", app.Position, app.Company)))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func listJobsCmd() *cobra.Command {
	var (
		status   string
		company  string
		position string
		sortBy   string
		active   bool
		desc     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			apps, err := store.GetApplications(ctx)
			if err != nil {
				return fmt.Errorf("failed to get applications: %w", err)
			}

			var filters []view.Predicate[model.JobApplication]
			if status != "" {
				want, parseErr := model.ParseApplicationStatus(status)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(a model.JobApplication) bool { return a.Status == want })
			}
			if company != "" {
				needle := strings.ToLower(company)
				filters = append(filters, func(a model.JobApplication) bool {
					return strings.Contains(strings.ToLower(a.Company), needle)
				})
			}
			if position != "" {
				needle := strings.ToLower(position)
				filters = append(filters, func(a model.JobApplication) bool {
					return strings.Contains(strings.ToLower(a.Position), needle)
				})
			}
			if active {
				filters = append(filters, model.JobApplication.IsActive)
			}

			var key view.Key[model.JobApplication]
			var sortState view.SortState
			if sortBy != "" {
				key, err = jobSortKey(sortBy)
				if err != nil {
					return err
				}
				sortState.Toggle(sortBy)
				if desc {
					sortState.Toggle(sortBy)
				}
			}

			apps = view.Apply(apps, filters, key, sortState.Direction)

			if len(apps) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No applications found."))
				return nil
			}

			cli.RenderApplications(os.Stdout, apps)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status")
	cmd.Flags().StringVarP(&company, "company", "c", "", "filter by company substring")
	cmd.Flags().StringVarP(&position, "position", "p", "", "filter by position substring")
	cmd.Flags().BoolVar(&active, "active", false, "only applications still in play")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by field (company, position, status, date)")
	cmd.Flags().BoolVar(&desc, "desc", false, "reverse the sort order")

	return cmd
}

// jobSortKey resolves a --sort field name to its comparable column.
func jobSortKey(field string) (view.Key[model.JobApplication], error) {
	switch strings.ToLower(field) {
	case "company":
		return func(a model.JobApplication) view.Comparable { return view.Str(strings.ToLower(a.Company)) }, nil
	case "position":
		return func(a model.JobApplication) view.Comparable { return view.Str(strings.ToLower(a.Position)) }, nil
	case "status":
		return func(a model.JobApplication) view.Comparable { return view.Str(string(a.Status)) }, nil
	case "date":
		return func(a model.JobApplication) view.Comparable { return view.Str(a.DateApplied.Format("2006-01-02")) }, nil
	default:
		return nil, fmt.Errorf("unknown sort field %q (want company, position, status or date)", field)
	}
}

func editJobCmd() *cobra.Command {
	var flags jobFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a job application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			app, err := store.GetApplicationByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get application: %w", err)
			}
			if app == nil {
				return fmt.Errorf("no application with id %q", args[0])
			}

			if err := flags.apply(cmd, app); err != nil {
				return err
			}

			if err := store.UpdateApplication(ctx, app); err != nil {
				return fmt.Errorf("failed to update application: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated %s at %s", app.Position, app.Company)))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func deleteJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteApplication(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete application: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Application deleted"))
			return nil
		},
	}
}

func jobStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show application pipeline statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			apps, err := store.GetApplications(ctx)
			if err != nil {
				return fmt.Errorf("failed to get applications: %w", err)
			}
			if len(apps) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No applications tracked yet."))
				return nil
			}

			s := metrics.AggregateJobs(apps, today())

			fmt.Println(cli.TitleStyle.Render("Job Applications"))
			fmt.Printf("Total:       %d\n", s.Total)
			printBucket("Active", s.Active)
			printBucket("Interviewed", s.Interviewed)
			printBucket("Offers", s.Offers)
			printBucket("Rejected", s.Rejected)
			printBucket("Expired", s.Expired)
			printBucket("Remote", s.Remote)
			printBucket("With bonus", s.Bonus)
			printBucket("USD salary", s.USD)
			fmt.Println()

			fmt.Printf("Applied today: %d  %s\n", s.AppliedToday, cli.Delta(s.TodayDelta))
			fmt.Printf("Applied this week: %d  %s\n", s.AppliedWeek, cli.Delta(s.WeekDelta))
			fmt.Printf("Applied this month: %d  %s\n", s.AppliedMonth, cli.Delta(s.MonthDelta))
			fmt.Printf("Weekly average: %.1f\n", s.WeeklyAvg)
			fmt.Println()

			if s.AvgSalaryAll > 0 {
				fmt.Printf("Avg salary (all):    $%.0f\n", s.AvgSalaryAll)
				fmt.Printf("Avg salary (listed): $%.0f (%+.1f%%)\n", s.AvgSalaryListed, s.SalaryDiffPercent)
				fmt.Println()
			}

			if len(s.ByMonth) > 0 {
				fmt.Println(cli.BoldStyle.Render("By month"))
				for _, mc := range s.ByMonth {
					fmt.Printf("%s  %3d  %s\n", mc.Month.Format("2006-01"), mc.Count, strings.Repeat("█", mc.Count))
				}
			}
			return nil
		},
	}
}

func printBucket(label string, b metrics.StatusBucket) {
	fmt.Printf("%-12s %3d (%.1f%%)\n", label+":", b.Count, b.Percent)
}

func importJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import applications from a CSV file",
		Long: `Import applications from a CSV export. Rows are written in chunks; a
malformed row aborts the import but chunks already written stay in the
database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			result, err := jobcsv.Import(ctx, store, f, true)
			if err != nil {
				if result.Imported > 0 {
					fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Imported %d of %d before failing", result.Imported, result.Total)))
				}
				return err
			}

			msg := fmt.Sprintf("Imported %d applications", result.Imported)
			if result.Skipped > 0 {
				msg += fmt.Sprintf(" (%d rows skipped)", result.Skipped)
			}
			fmt.Println(cli.SuccessStyle.Render(msg))
			return nil
		},
	}
}

func exportJobsCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export applications to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			apps, err := store.GetApplications(ctx)
			if err != nil {
				return fmt.Errorf("failed to get applications: %w", err)
			}

			out := os.Stdout
			if outPath != "" {
				out, err = os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer func() { _ = out.Close() }()
			}

			if err := jobcsv.Export(out, apps); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if outPath != "" {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Exported %d applications to %s", len(apps), outPath)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func openJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open an application's documents",
		Long:  `Open the resume and cover letter attached to an application with the OS default handler.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			app, err := store.GetApplicationByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get application: %w", err)
			}
			if app == nil {
				return fmt.Errorf("no application with id %q", args[0])
			}
			if app.ResumePath == "" && app.CoverLetterPath == "" {
				fmt.Println(cli.SubtleStyle.Render("No documents attached to this application."))
				return nil
			}

			for _, path := range []string{app.ResumePath, app.CoverLetterPath} {
				if path == "" {
					continue
				}
				if err := launcher.Open(config.ExpandPath(path)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func clearJobsCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all job applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !yes {
				return fmt.Errorf("this deletes every application; re-run with --yes to confirm")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteAllApplications(ctx); err != nil {
				return fmt.Errorf("failed to clear applications: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("All applications deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
