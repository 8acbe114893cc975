package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	SplitType   SplitType       `json:"split_type" db:"split_type"`
	CreatedBy   string          `json:"created_by" db:"created_by"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ExpenseWithSplits is an expense joined with the splits it owns.
type ExpenseWithSplits struct {
	Expense
	Splits []Split `json:"splits"`
}
