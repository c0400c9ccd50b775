// Package model defines the core domain models used throughout the application.
package model

import "time"

// TransactionKind indicates the direction of a transaction.
type TransactionKind string

const (
	// KindIncome represents money coming in.
	KindIncome TransactionKind = "income"
	// KindExpense represents money going out.
	KindExpense TransactionKind = "expense"
)

// Valid reports whether the kind is one of the known values.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Category represents one entry of the bookkeeping taxonomy.
type Category struct {
	CreatedAt time.Time
	Name      string
	Kind      TransactionKind
	ID        int
	IsActive  bool
}

// Fallback categories used when no classification layer produces a candidate.
const (
	FallbackExpenseCategory = "Outros"
	FallbackIncomeCategory  = "Outras Receitas"
)

// FallbackCategory returns the default category for a transaction kind.
func FallbackCategory(kind TransactionKind) string {
	if kind == KindIncome {
		return FallbackIncomeCategory
	}
	return FallbackExpenseCategory
}
