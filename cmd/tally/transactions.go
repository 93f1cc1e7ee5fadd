package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/bankimport"
	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/metrics"
	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/view"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "Track financial transactions",
	}

	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(deleteTransactionCmd())
	cmd.AddCommand(importTransactionsCmd())
	cmd.AddCommand(spendingCmd())
	cmd.AddCommand(transactionTypesCmd())
	cmd.AddCommand(paymentMethodsCmd())

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		dateStr  string
		typeID   string
		methodID string
		memo     string
	)

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Add a transaction",
		Long:  `Add a transaction. Negative amounts are expenses, positive amounts income.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn := &model.Transaction{
				TransactionDate:     date,
				Description:         args[0],
				DetailedDescription: memo,
				Amount:              amount,
				TypeID:              typeID,
				PaymentMethodID:     methodID,
			}
			if err := store.SaveTransaction(ctx, txn); err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added transaction %q (%s)", txn.Description, args[1])))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&typeID, "type", "t", "", "transaction type id")
	cmd.Flags().StringVar(&methodID, "method", "", "payment method id")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "detailed description")

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		search       string
		typeName     string
		methodName   string
		expensesOnly bool
		sinceStr     string
		untilStr     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
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

			var filters []view.Predicate[model.Transaction]
			if search != "" {
				needle := strings.ToLower(search)
				filters = append(filters, func(t model.Transaction) bool {
					return strings.Contains(strings.ToLower(t.Description), needle)
				})
			}
			if expensesOnly {
				filters = append(filters, func(t model.Transaction) bool { return t.Amount < 0 })
			}
			if typeName != "" {
				filters = append(filters, func(t model.Transaction) bool {
					return strings.EqualFold(t.TypeName, typeName)
				})
			}
			if methodName != "" {
				filters = append(filters, func(t model.Transaction) bool {
					return strings.EqualFold(t.PaymentMethodName, methodName)
				})
			}
			if sinceStr != "" {
				since, parseErr := parseDate(sinceStr)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(t model.Transaction) bool { return !t.TransactionDate.Before(since) })
			}
			if untilStr != "" {
				until, parseErr := parseDate(untilStr)
				if parseErr != nil {
					return parseErr
				}
				filters = append(filters, func(t model.Transaction) bool { return !t.TransactionDate.After(until) })
			}

			txns = view.Apply(txns, filters, nil, view.Ascending)

			if len(txns) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions found."))
				return nil
			}

			cli.RenderTransactions(os.Stdout, txns)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by description substring")
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "filter by transaction type name")
	cmd.Flags().StringVar(&methodName, "method", "", "filter by payment method name")
	cmd.Flags().BoolVar(&expensesOnly, "expenses", false, "only expenses")
	cmd.Flags().StringVar(&sinceStr, "since", "", "only transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&untilStr, "until", "", "only transactions on or before this date (YYYY-MM-DD)")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Transaction deleted"))
			return nil
		},
	}
}

func importTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a bank file",
		Long: `Import transactions from an OFX/QFX download or an XLSX statement.
The format is chosen by file extension. Transactions already imported
are recognized by content hash and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			var (
				txns []model.Transaction
				err  error
			)
			switch strings.ToLower(filepath.Ext(path)) {
			case ".ofx", ".qfx":
				f, openErr := os.Open(path)
				if openErr != nil {
					return fmt.Errorf("failed to open %s: %w", path, openErr)
				}
				defer func() { _ = f.Close() }()
				txns, err = bankimport.NewOFXParser().Parse(ctx, f)
			case ".xlsx":
				txns, err = bankimport.ParseXLSX(path)
			default:
				return fmt.Errorf("unsupported file type %q (want .ofx, .qfx or .xlsx)", filepath.Ext(path))
			}
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			if len(txns) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions in file."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			inserted, err := store.SaveTransactions(ctx, txns)
			if err != nil {
				return fmt.Errorf("failed to save transactions: %w", err)
			}

			skipped := len(txns) - inserted
			msg := fmt.Sprintf("Imported %d transactions", inserted)
			if skipped > 0 {
				msg += fmt.Sprintf(" (%d duplicates skipped)", skipped)
			}
			fmt.Println(cli.SuccessStyle.Render(msg))
			return nil
		},
	}
}

func spendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spending",
		Short: "Show windowed spending totals",
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
			if len(txns) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions tracked yet."))
				return nil
			}

			s := metrics.AggregateTransactions(txns, today())

			fmt.Println(cli.TitleStyle.Render("Spending"))
			fmt.Printf("Today:      $%.2f  %s\n", s.SpentToday, cli.Delta(s.TodayDelta))
			fmt.Printf("This week:  $%.2f  %s\n", s.SpentWeek, cli.Delta(s.WeekDelta))
			fmt.Printf("This month: $%.2f  %s\n", s.SpentMonth, cli.Delta(s.MonthDelta))
			fmt.Printf("Income this month: $%.2f\n", s.IncomeMonth)
			fmt.Printf("Net this month:    $%.2f\n", s.NetMonth)

			if len(s.ByTypeMonth) > 0 {
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render("By type (month)"))
				for _, ta := range s.ByTypeMonth {
					fmt.Printf("%-20s $%10.2f\n", ta.TypeName, ta.Amount)
				}
			}
			return nil
		},
	}
}

func transactionTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage transaction types",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a transaction type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tt := &model.TransactionType{Name: args[0]}
			if err := store.SaveTransactionType(ctx, tt); err != nil {
				return fmt.Errorf("failed to save transaction type: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added type %q", tt.Name)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List transaction types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			types, err := store.GetTransactionTypes(ctx)
			if err != nil {
				return fmt.Errorf("failed to get transaction types: %w", err)
			}
			if len(types) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transaction types defined."))
				return nil
			}

			for _, tt := range types {
				fmt.Printf("%s  %s\n", cli.SubtleStyle.Render(tt.ID), tt.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction type",
		Long:  `Delete a transaction type. Transactions that referenced it keep their data and show an empty type.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransactionType(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete transaction type: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Transaction type deleted"))
			return nil
		},
	})

	return cmd
}

func paymentMethodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods",
		Short: "Manage payment methods",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			pm := &model.PaymentMethod{Name: args[0]}
			if err := store.SavePaymentMethod(ctx, pm); err != nil {
				return fmt.Errorf("failed to save payment method: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added method %q", pm.Name)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List payment methods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			methods, err := store.GetPaymentMethods(ctx)
			if err != nil {
				return fmt.Errorf("failed to get payment methods: %w", err)
			}
			if len(methods) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No payment methods defined."))
				return nil
			}

			for _, pm := range methods {
				fmt.Printf("%s  %s\n", cli.SubtleStyle.Render(pm.ID), pm.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeletePaymentMethod(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete payment method: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Payment method deleted"))
			return nil
		},
	})

	return cmd
}
