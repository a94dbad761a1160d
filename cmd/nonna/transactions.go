package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nonna-dev/nonna/internal/model"
	"github.com/nonna-dev/nonna/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "List and delete transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		fromFlag     string
		toFlag       string
		categoryFlag string
		limit        int
		offset       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			filter := service.TransactionFilter{Limit: limit, Offset: offset}
			if fromFlag != "" {
				from, err := parseDateFlag(fromFlag)
				if err != nil {
					return err
				}
				filter.StartDate = &from
			}
			if toFlag != "" {
				to, err := parseDateFlag(toFlag)
				if err != nil {
					return err
				}
				to = endOfDay(to)
				filter.EndDate = &to
			}
			if categoryFlag != "" {
				cat, err := store.GetCategoryByName(ctx, categoryFlag)
				if err != nil {
					return fmt.Errorf("failed to resolve category %q: %w", categoryFlag, err)
				}
				filter.CategoryID = cat.ID
			}

			transactions, err := store.GetTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println("No transactions found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tDate\tDescription\tCategory\tAmount")
			for _, txn := range transactions {
				sign := "-"
				if txn.Type == model.TypeIncome {
					sign = "+"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s$%.2f\n",
					txn.ID,
					txn.Date.Format("2006-01-02"),
					txn.Description,
					txn.Category.Name,
					sign, txn.Amount)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "only transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "only transactions on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "only transactions in this category")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of transactions to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of transactions to skip")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a transaction by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Printf("Deleted transaction #%d\n", id)
			return nil
		},
	}
}
