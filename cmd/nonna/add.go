package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nonna-dev/nonna/internal/common"
	"github.com/nonna-dev/nonna/internal/model"
	"github.com/nonna-dev/nonna/internal/parser"
	"github.com/nonna-dev/nonna/internal/service"
)

func addCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Record a transaction from plain English",
		Long: `Parse a free-form phrase like "Starbucks $8.45" or "Paycheck $2500"
into a categorized transaction and save it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.Join(args, " ")

			date := time.Now()
			if dateFlag != "" {
				parsed, err := parseDateFlag(dateFlag)
				if err != nil {
					return err
				}
				date = parsed
			}

			p, err := initParser()
			if err != nil {
				return err
			}

			// Service failures are worth retrying; a malformed response is
			// not, since the call itself succeeded.
			var draft model.TransactionDraft
			retryOpts := service.RetryOptions{
				MaxAttempts:  viper.GetInt("llm.max_retries"),
				InitialDelay: time.Second,
			}
			err = common.WithRetry(ctx, func() error {
				parsed, parseErr := p.Parse(ctx, text)
				if parseErr != nil {
					var malformed *parser.MalformedResponseError
					if errors.As(parseErr, &malformed) {
						return &common.RetryableError{Err: parseErr, Retryable: false}
					}
					return parseErr
				}
				draft = parsed
				return nil
			}, retryOpts)
			if err != nil {
				var malformed *parser.MalformedResponseError
				if errors.As(err, &malformed) {
					return common.NewUserError("couldn't make sense of that phrase; try rewording it or enter the transaction manually", err)
				}
				return common.NewUserError("transaction parsing is unavailable right now", err)
			}

			if draft.Amount == 0 {
				return common.NewUserError(fmt.Sprintf("no amount found in %q; include one like \"%s $12.50\"", text, text), nil)
			}
			if draft.Description == "" {
				draft.Description = text
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category, err := store.GetCategoryByName(ctx, draft.Category)
			if err != nil {
				return fmt.Errorf("failed to resolve category %q: %w", draft.Category, err)
			}

			saved, err := store.SaveTransaction(ctx, &model.Transaction{
				Amount:      draft.Amount,
				Description: draft.Description,
				Type:        draft.Type,
				Date:        date,
				CategoryID:  category.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to save transaction: %w", err)
			}

			sign := "-"
			if saved.Type == model.TypeIncome {
				sign = "+"
			}
			fmt.Printf("Recorded #%d: %s %s$%.2f (%s, %s)\n",
				saved.ID, saved.Description, sign, saved.Amount,
				saved.Category.Name, saved.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "transaction date (YYYY-MM-DD, default today)")

	return cmd
}
