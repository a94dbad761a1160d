package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nonna-dev/nonna/internal/analytics"
	"github.com/nonna-dev/nonna/internal/service"
)

func summaryCmd() *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending totals grouped by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var filter service.TransactionFilter
			var period analytics.Period
			if fromFlag != "" {
				from, err := parseDateFlag(fromFlag)
				if err != nil {
					return err
				}
				filter.StartDate = &from
				period.Start = from
			}
			if toFlag != "" {
				to, err := parseDateFlag(toFlag)
				if err != nil {
					return err
				}
				to = endOfDay(to)
				filter.EndDate = &to
				period.End = to
			}

			transactions, err := store.GetTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			summary := analytics.Summarize(transactions, &period)

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(summary)
			}

			fmt.Printf("Income:   $%.2f\n", summary.TotalIncome)
			fmt.Printf("Expenses: $%.2f\n", summary.TotalExpenses)
			fmt.Printf("Net:      $%.2f\n", summary.NetBalance)

			if len(summary.ByCategory) == 0 {
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "Category\tCount\tTotal\tShare")
			for _, cat := range summary.ByCategory {
				fmt.Fprintf(w, "%s\t%d\t$%.2f\t%.1f%%\n",
					cat.CategoryName, cat.Count, cat.Total, cat.Percentage)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "start of the reporting period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "end of the reporting period (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the summary as JSON")

	return cmd
}
