package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonna-dev/nonna/internal/common"
	"github.com/nonna-dev/nonna/internal/model"
	"github.com/nonna-dev/nonna/internal/service"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SeedDefaultCategories(ctx))

	return store
}

func TestMigrate(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	// Migrations are idempotent.
	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSeedDefaultCategories(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(model.DefaultCategories))

	byName := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byName[cat.Name] = cat
	}
	for _, want := range model.DefaultCategories {
		got, ok := byName[want.Name]
		require.True(t, ok, "missing category %q", want.Name)
		assert.Equal(t, want.Color, got.Color)
	}

	// Seeding again must not duplicate.
	require.NoError(t, store.SeedDefaultCategories(ctx))
	categories, err = store.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(model.DefaultCategories))
}

func TestCategoryCRUD(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Travel", "#0EA5E9")
	require.NoError(t, err)
	assert.NotZero(t, cat.ID)
	assert.Equal(t, "Travel", cat.Name)
	assert.Equal(t, "#0EA5E9", cat.Color)

	byName, err := store.GetCategoryByName(ctx, "Travel")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, byName.ID)

	byID, err := store.GetCategoryByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", byID.Name)

	// Duplicate names are rejected.
	_, err = store.CreateCategory(ctx, "Travel", "")
	require.ErrorIs(t, err, common.ErrDuplicateEntry)

	// Default color applied when omitted.
	plain, err := store.CreateCategory(ctx, "Gifts", "")
	require.NoError(t, err)
	assert.Equal(t, "#6B7280", plain.Color)

	// Lookups of unknown categories report not-found.
	_, err = store.GetCategoryByName(ctx, "Nope")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = store.GetCategoryByID(ctx, 9999)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	food, err := store.GetCategoryByName(ctx, "Food & Drink")
	require.NoError(t, err)

	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	saved, err := store.SaveTransaction(ctx, &model.Transaction{
		Amount:      8.45,
		Description: "Starbucks",
		Type:        model.TypeExpense,
		Date:        date,
		CategoryID:  food.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "Food & Drink", saved.Category.Name)
	assert.Equal(t, "#EF4444", saved.Category.Color)

	got, err := store.GetTransactionByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Starbucks", got.Description)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.InDelta(t, 8.45, got.Amount, 0.001)
	assert.True(t, got.Date.Equal(date))
	assert.Equal(t, food.ID, got.CategoryID)
}

func TestSaveTransactionValidation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	food, err := store.GetCategoryByName(ctx, "Food & Drink")
	require.NoError(t, err)

	date := time.Now()
	tests := []struct {
		name string
		txn  model.Transaction
	}{
		{
			name: "zero amount",
			txn:  model.Transaction{Amount: 0, Description: "x", Type: model.TypeExpense, Date: date, CategoryID: food.ID},
		},
		{
			name: "negative amount",
			txn:  model.Transaction{Amount: -5, Description: "x", Type: model.TypeExpense, Date: date, CategoryID: food.ID},
		},
		{
			name: "empty description",
			txn:  model.Transaction{Amount: 5, Description: "  ", Type: model.TypeExpense, Date: date, CategoryID: food.ID},
		},
		{
			name: "invalid type",
			txn:  model.Transaction{Amount: 5, Description: "x", Type: "transfer", Date: date, CategoryID: food.ID},
		},
		{
			name: "zero date",
			txn:  model.Transaction{Amount: 5, Description: "x", Type: model.TypeExpense, CategoryID: food.ID},
		},
		{
			name: "missing category",
			txn:  model.Transaction{Amount: 5, Description: "x", Type: model.TypeExpense, Date: date},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SaveTransaction(ctx, &tt.txn)
			require.Error(t, err)
		})
	}

	// Unknown category IDs are rejected on save.
	_, err = store.SaveTransaction(ctx, &model.Transaction{
		Amount: 5, Description: "x", Type: model.TypeExpense, Date: date, CategoryID: 9999,
	})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetTransactionsFiltering(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	food, err := store.GetCategoryByName(ctx, "Food & Drink")
	require.NoError(t, err)
	income, err := store.GetCategoryByName(ctx, "Income")
	require.NoError(t, err)

	save := func(amount float64, desc string, txnType model.TransactionType, catID int64, date time.Time) {
		t.Helper()
		_, err := store.SaveTransaction(ctx, &model.Transaction{
			Amount: amount, Description: desc, Type: txnType, Date: date, CategoryID: catID,
		})
		require.NoError(t, err)
	}

	save(10, "groceries", model.TypeExpense, food.ID, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	save(20, "lunch", model.TypeExpense, food.ID, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	save(2500, "paycheck", model.TypeIncome, income.ID, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))

	all, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "paycheck", all[0].Description)
	assert.Equal(t, "groceries", all[2].Description)

	// Inclusive date bounds.
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	ranged, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	// Category filter.
	foodOnly, err := store.GetTransactions(ctx, service.TransactionFilter{CategoryID: food.ID})
	require.NoError(t, err)
	assert.Len(t, foodOnly, 2)

	// Limit and offset.
	paged, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "lunch", paged[0].Description)
}

func TestUpdateTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	food, err := store.GetCategoryByName(ctx, "Food & Drink")
	require.NoError(t, err)
	shopping, err := store.GetCategoryByName(ctx, "Shopping")
	require.NoError(t, err)

	saved, err := store.SaveTransaction(ctx, &model.Transaction{
		Amount: 15, Description: "misc", Type: model.TypeExpense,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CategoryID: food.ID,
	})
	require.NoError(t, err)

	saved.Amount = 17.50
	saved.Description = "socks"
	saved.CategoryID = shopping.ID
	require.NoError(t, store.UpdateTransaction(ctx, saved))

	got, err := store.GetTransactionByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.InDelta(t, 17.50, got.Amount, 0.001)
	assert.Equal(t, "socks", got.Description)
	assert.Equal(t, "Shopping", got.Category.Name)

	// Updating a missing transaction reports not-found.
	missing := *saved
	missing.ID = 9999
	require.ErrorIs(t, store.UpdateTransaction(ctx, &missing), common.ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	food, err := store.GetCategoryByName(ctx, "Food & Drink")
	require.NoError(t, err)

	saved, err := store.SaveTransaction(ctx, &model.Transaction{
		Amount: 5, Description: "snack", Type: model.TypeExpense,
		Date: time.Now(), CategoryID: food.ID,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTransaction(ctx, saved.ID))

	_, err = store.GetTransactionByID(ctx, saved.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.ErrorIs(t, store.DeleteTransaction(ctx, saved.ID), common.ErrNotFound)
}
