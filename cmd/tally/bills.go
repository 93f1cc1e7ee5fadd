package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/schedule"
	"github.com/joe5h/tally/internal/suggest"
	"github.com/joe5h/tally/internal/view"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage recurring bills",
		Long:  `Add, list, edit and delete recurring bills, and project their upcoming due dates.`,
	}

	cmd.AddCommand(addBillCmd())
	cmd.AddCommand(listBillsCmd())
	cmd.AddCommand(editBillCmd())
	cmd.AddCommand(deleteBillCmd())
	cmd.AddCommand(upcomingCmd())
	cmd.AddCommand(suggestBillsCmd())

	return cmd
}

func addBillCmd() *cobra.Command {
	var (
		frequency string
		dateStr   string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add a recurring bill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || amount < 0 {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			freq, err := model.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			billDate, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bill := &model.Bill{
				Name:      args[0],
				Amount:    amount,
				Frequency: freq,
				BillDate:  billDate,
			}
			if err := store.SaveBill(ctx, bill); err != nil {
				return fmt.Errorf("failed to save bill: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added bill %q (%s, %s)", bill.Name, freq, args[1])))
			return nil
		},
	}

	cmd.Flags().StringVarP(&frequency, "frequency", "f", "monthly", "weekly, bi-weekly, monthly, quarterly or yearly")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "anchor due date (YYYY-MM-DD, default today)")

	return cmd
}

func listBillsCmd() *cobra.Command {
	var frequency string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all bills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bills, err := store.GetBills(ctx)
			if err != nil {
				return fmt.Errorf("failed to get bills: %w", err)
			}

			var filters []view.Predicate[model.Bill]
			if frequency != "" {
				want, parseErr := model.ParseFrequency(frequency)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(b model.Bill) bool { return b.Frequency == want })
			}

			bills = view.Apply(bills, filters,
				func(b model.Bill) view.Comparable { return view.Str(b.Name) },
				view.Ascending)

			if len(bills) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No bills tracked. Use 'tally bills add' to create one."))
				return nil
			}

			cli.RenderBills(os.Stdout, bills)
			return nil
		},
	}

	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "only bills with this frequency")

	return cmd
}

func editBillCmd() *cobra.Command {
	var (
		name      string
		amountStr string
		frequency string
		dateStr   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bill, err := store.GetBillByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get bill: %w", err)
			}
			if bill == nil {
				return fmt.Errorf("no bill with id %q", args[0])
			}

			if name != "" {
				bill.Name = name
			}
			if amountStr != "" {
				amount, parseErr := strconv.ParseFloat(amountStr, 64)
				if parseErr != nil || amount < 0 {
					return fmt.Errorf("invalid amount %q", amountStr)
				}
				bill.Amount = amount
			}
			if frequency != "" {
				freq, parseErr := model.ParseFrequency(frequency)
				if parseErr != nil {
					return parseErr
				}
				bill.Frequency = freq
			}
			if dateStr != "" {
				billDate, parseErr := parseDate(dateStr)
				if parseErr != nil {
					return parseErr
				}
				bill.BillDate = billDate
			}

			if err := store.UpdateBill(ctx, bill); err != nil {
				return fmt.Errorf("failed to update bill: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated bill %q", bill.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&amountStr, "amount", "", "new amount")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "new frequency")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "new anchor date (YYYY-MM-DD)")

	return cmd
}

func deleteBillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBill(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete bill: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Bill deleted"))
			return nil
		},
	}
}

func upcomingCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next due bill occurrences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bills, err := store.GetBills(ctx)
			if err != nil {
				return fmt.Errorf("failed to get bills: %w", err)
			}

			now := today()
			occurrences := schedule.Upcoming(bills, now, count)
			if len(occurrences) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No bills tracked."))
				return nil
			}

			cli.RenderUpcoming(os.Stdout, occurrences, now)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", schedule.DefaultLookahead, "how many occurrences to show")

	return cmd
}

func suggestBillsCmd() *cobra.Command {
	var tolerance float64

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Detect recurring payments in imported transactions",
		Long:  `Scan transaction history for charges that recur once a month at a stable amount and suggest them as bills.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txns, err := store.GetTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}
			bills, err := store.GetBills(ctx)
			if err != nil {
				return fmt.Errorf("failed to get bills: %w", err)
			}

			candidates := suggest.RecurringBills(txns, bills, tolerance)
			if len(candidates) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No recurring payments detected."))
				return nil
			}

			cli.RenderSuggestions(os.Stdout, candidates)
			fmt.Println(cli.SubtleStyle.Render("Use 'tally bills add' to start tracking one of these."))
			return nil
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", suggest.DefaultTolerance, "max relative price change between payments")

	return cmd
}
