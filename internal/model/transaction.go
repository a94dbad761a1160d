// Package model defines the core data shapes shared by the parser, the
// analytics engine, and the persistence layer.
package model

import "time"

// TransactionType discriminates expenses from income.
type TransactionType string

const (
	// TypeExpense marks money leaving the account.
	TypeExpense TransactionType = "expense"
	// TypeIncome marks money entering the account.
	TypeIncome TransactionType = "income"
)

// Valid reports whether t is one of the two legal transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Transaction represents a single persisted financial record.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Type        TransactionType
	Category    Category
	ID          int64
	CategoryID  int64
	Amount      float64
}

// TransactionDraft is an unpersisted candidate record produced by the parser.
// A draft only exists post-validation: Category is always a taxonomy member,
// Type is always a legal TransactionType, and Amount is always non-negative.
type TransactionDraft struct {
	Description string
	Category    string
	Type        TransactionType
	Amount      float64
}
