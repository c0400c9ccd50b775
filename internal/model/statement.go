package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRecord is one row of an ingested bank statement. The classifier
// core only consumes Description and Kind; the rest is carried through for
// the caller's bookkeeping.
type StatementRecord struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Kind        TransactionKind
}

// KindFromAmount derives the transaction kind from the amount's sign,
// used when a statement carries no explicit kind column.
func KindFromAmount(amount decimal.Decimal) TransactionKind {
	if amount.Sign() > 0 {
		return KindIncome
	}
	return KindExpense
}
