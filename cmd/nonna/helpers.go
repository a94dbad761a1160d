package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/nonna-dev/nonna/internal/config"
	"github.com/nonna-dev/nonna/internal/llm"
	"github.com/nonna-dev/nonna/internal/parser"
	"github.com/nonna-dev/nonna/internal/service"
	"github.com/nonna-dev/nonna/internal/storage"
)

// initStorage opens the database, applies migrations, and seeds the default
// categories when the database is fresh.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.SeedDefaultCategories(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	return store, nil
}

// initParser builds the transaction parser from the configured LLM provider.
func initParser() (*parser.Parser, error) {
	client, err := llm.NewClient(llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return parser.New(client, parser.Config{
		RequestTimeout: viper.GetDuration("llm.request_timeout"),
		RateLimit:      viper.GetInt("llm.rate_limit"),
	}, slog.Default()), nil
}

// parseDateFlag parses a --from/--to style flag value as a local calendar day.
func parseDateFlag(value string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return d, nil
}

// endOfDay pushes a date to the last instant of its day so --to bounds are
// inclusive.
func endOfDay(d time.Time) time.Time {
	return d.Add(24*time.Hour - time.Nanosecond)
}
