package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/metrics"
	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/view"
)

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Track time against tasks",
	}

	cmd.AddCommand(addEntryCmd())
	cmd.AddCommand(listEntriesCmd())
	cmd.AddCommand(editEntryCmd())
	cmd.AddCommand(timeSummaryCmd())

	return cmd
}

func addEntryCmd() *cobra.Command {
	var (
		dateStr     string
		startTime   string
		endTime     string
		hoursStr    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Record time against a task",
		Long: `Record time against a task. Give either a start and end time, from
which the duration is derived and rounded to the nearest quarter hour,
or an explicit hour count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			workDate, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			duration, err := resolveDuration(startTime, endTime, hoursStr)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			task, err := store.GetTaskByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}
			if task == nil {
				return fmt.Errorf("no task with id %q", args[0])
			}

			entry := &model.TimeEntry{
				TaskID:      task.ID,
				WorkDate:    workDate,
				StartTime:   startTime,
				EndTime:     endTime,
				Duration:    duration,
				Description: description,
			}
			if err := store.SaveTimeEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to save time entry: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Logged %.2fh on %q", duration, task.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "work date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&startTime, "start", "s", "", "start time (HH:MM)")
	cmd.Flags().StringVarP(&endTime, "end", "e", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&hoursStr, "hours", "", "duration in hours, instead of start/end")
	cmd.Flags().StringVarP(&description, "description", "m", "", "what the time was spent on")

	return cmd
}

// resolveDuration turns the add flags into a duration in hours. Start/end
// times win over an explicit hour count when both are given.
func resolveDuration(startTime, endTime, hoursStr string) (float64, error) {
	if startTime != "" || endTime != "" {
		if startTime == "" || endTime == "" {
			return 0, fmt.Errorf("start and end times must be given together")
		}
		if _, err := model.ParseClock(startTime); err != nil {
			return 0, err
		}
		if _, err := model.ParseClock(endTime); err != nil {
			return 0, err
		}
		return model.DurationBetween(startTime, endTime), nil
	}

	if hoursStr == "" {
		return 0, fmt.Errorf("give either --start/--end or --hours")
	}
	hours, err := strconv.ParseFloat(hoursStr, 64)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid hours %q", hoursStr)
	}
	return model.RoundToQuarterHour(hours), nil
}

func listEntriesCmd() *cobra.Command {
	var (
		projectID string
		onStr     string
		sinceStr  string
		untilStr  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetTimeEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to get time entries: %w", err)
			}

			var filters []view.Predicate[model.TimeEntry]
			if projectID != "" {
				filters = append(filters, func(e model.TimeEntry) bool { return e.ProjectID == projectID })
			}
			if onStr != "" {
				on, parseErr := parseDate(onStr)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(e model.TimeEntry) bool { return e.WorkDate.Equal(on) })
			}
			if sinceStr != "" {
				since, parseErr := parseDate(sinceStr)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(e model.TimeEntry) bool { return !e.WorkDate.Before(since) })
			}
			if untilStr != "" {
				until, parseErr := parseDate(untilStr)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(e model.TimeEntry) bool { return !e.WorkDate.After(until) })
			}

			entries = view.Apply(entries, filters,
				func(e model.TimeEntry) view.Comparable { return view.Str(e.WorkDate.Format(dateLayout)) },
				view.Descending)

			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No time entries found."))
				return nil
			}

			cli.RenderTimeEntries(os.Stdout, entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "only entries for this project id")
	cmd.Flags().StringVarP(&onStr, "date", "d", "", "only entries on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sinceStr, "since", "", "only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&untilStr, "until", "", "only entries on or before this date (YYYY-MM-DD)")

	return cmd
}

func editEntryCmd() *cobra.Command {
	var (
		dateStr     string
		startTime   string
		endTime     string
		hoursStr    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entry, err := store.GetTimeEntryByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get time entry: %w", err)
			}
			if entry == nil {
				return fmt.Errorf("no time entry with id %q", args[0])
			}

			if dateStr != "" {
				workDate, parseErr := parseDate(dateStr)
				if parseErr != nil {
					return parseErr
				}
				entry.WorkDate = workDate
			}
			if startTime != "" {
				entry.StartTime = startTime
			}
			if endTime != "" {
				entry.EndTime = endTime
			}
			switch {
			case hoursStr != "":
				hours, parseErr := strconv.ParseFloat(hoursStr, 64)
				if parseErr != nil || hours < 0 {
					return fmt.Errorf("invalid hours %q", hoursStr)
				}
				entry.Duration = model.RoundToQuarterHour(hours)
			case startTime != "" || endTime != "":
				entry.Duration = model.DurationBetween(entry.StartTime, entry.EndTime)
			}
			if description != "" {
				entry.Description = description
			}

			if err := store.UpdateTimeEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to update time entry: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated entry (%.2fh)", entry.Duration)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "new work date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&startTime, "start", "s", "", "new start time (HH:MM)")
	cmd.Flags().StringVarP(&endTime, "end", "e", "", "new end time (HH:MM)")
	cmd.Flags().StringVar(&hoursStr, "hours", "", "new duration in hours")
	cmd.Flags().StringVarP(&description, "description", "m", "", "new description")

	return cmd
}

func timeSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show windowed hour totals and per-project distribution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetTimeEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to get time entries: %w", err)
			}

			s := metrics.AggregateTime(entries, today())

			fmt.Println(cli.TitleStyle.Render("Time Tracked"))
			fmt.Printf("Today:      %6.2fh  %s\n", s.Today, cli.Delta(s.TodayDelta))
			fmt.Printf("This week:  %6.2fh  %s\n", s.Week, cli.Delta(s.WeekDelta))
			fmt.Printf("This month: %6.2fh  %s\n", s.Month, cli.Delta(s.MonthDelta))
			fmt.Printf("This year:  %6.2fh\n", s.Year)
			fmt.Println()

			if len(s.ByProjectWeek) > 0 {
				cli.RenderProjectHours(os.Stdout, "By project (week)", s.ByProjectWeek)
			}
			if len(s.ByProjectMonth) > 0 {
				cli.RenderProjectHours(os.Stdout, "By project (month)", s.ByProjectMonth)
			}
			return nil
		},
	}
}
