package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/metrics"
	"github.com/joe5h/tally/internal/schedule"
	"github.com/joe5h/tally/internal/service"
)

const watchInterval = 60 * time.Second

func dashboardCmd() *cobra.Command {
	var (
		watch bool
		count int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the combined dashboard",
		Long: `Show tracked time, job applications, spending and upcoming bills in
one view. With --watch the dashboard redraws every minute until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := renderDashboardOnce(ctx, store, count, watch); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ticker := time.NewTicker(watchInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := renderDashboardOnce(ctx, store, count, watch); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "redraw every minute")
	cmd.Flags().IntVarP(&count, "bills", "n", schedule.DefaultLookahead, "how many upcoming bills to show")

	return cmd
}

// renderDashboardOnce reloads every snapshot and redraws. Each refresh is a
// full recompute; the tables are small enough that caching is not worth the
// staleness.
func renderDashboardOnce(ctx context.Context, store service.Storage, billCount int, clear bool) error {
	entries, err := store.GetTimeEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to get time entries: %w", err)
	}
	apps, err := store.GetApplications(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applications: %w", err)
	}
	txns, err := store.GetTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}
	bills, err := store.GetBills(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bills: %w", err)
	}

	now := today()
	d := cli.Dashboard{
		Time:         metrics.AggregateTime(entries, now),
		Jobs:         metrics.AggregateJobs(apps, now),
		Transactions: metrics.AggregateTransactions(txns, now),
		Upcoming:     schedule.Upcoming(bills, now, billCount),
		Now:          time.Now(),
	}

	if clear {
		fmt.Print("\033[H\033[2J")
	}
	cli.RenderDashboard(os.Stdout, d)
	return nil
}
