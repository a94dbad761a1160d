package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nonna-dev/nonna/internal/common"
	"github.com/nonna-dev/nonna/internal/model"
	"github.com/nonna-dev/nonna/internal/service"
)

const transactionColumns = `
	t.id, t.amount, t.description, t.transaction_type, t.date, t.created_at,
	c.id, c.name, c.color, c.created_at`

// SaveTransaction persists a new transaction and returns it with its
// assigned ID and resolved category.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	category, err := s.GetCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (amount, description, transaction_type, date, created_at, category_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		txn.Amount, txn.Description, string(txn.Type), txn.Date.UTC(), now, txn.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction id: %w", err)
	}

	saved := *txn
	saved.ID = id
	saved.CreatedAt = now
	saved.Category = *category

	slog.Debug("saved transaction",
		"id", id,
		"description", saved.Description,
		"category", category.Name,
		"amount", saved.Amount)
	return &saved, nil
}

// GetTransactionByID returns a single transaction with its category, or
// common.ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ?`

	row := s.db.QueryRowContext(ctx, query, id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransactions returns transactions matching the filter, newest first.
// Date bounds are inclusive.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "t.date >= ?")
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "t.date <= ?")
		args = append(args, filter.EndDate.UTC())
	}
	if filter.CategoryID != 0 {
		conditions = append(conditions, "t.category_id = ?")
		args = append(args, filter.CategoryID)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.date DESC, t.id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// UpdateTransaction rewrites an existing transaction's mutable fields.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	if txn.ID == 0 {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}

	if _, err := s.GetCategoryByID(ctx, txn.CategoryID); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, description = ?, transaction_type = ?, date = ?, category_id = ?
		WHERE id = ?`,
		txn.Amount, txn.Description, string(txn.Type), txn.Date.UTC(), txn.CategoryID, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", txn.ID, common.ErrNotFound)
	}

	return nil
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType string

	err := row.Scan(
		&txn.ID, &txn.Amount, &txn.Description, &txnType, &txn.Date, &txn.CreatedAt,
		&txn.Category.ID, &txn.Category.Name, &txn.Category.Color, &txn.Category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Type = model.TransactionType(txnType)
	txn.CategoryID = txn.Category.ID
	return &txn, nil
}
