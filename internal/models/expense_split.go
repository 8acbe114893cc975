package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Split struct {
	ID         string              `json:"id" db:"id"`
	ExpenseID  string              `json:"expense_id" db:"expense_id"`
	UserID     string              `json:"user_id" db:"user_id"`
	Amount     decimal.Decimal     `json:"amount" db:"amount"`
	Percentage decimal.NullDecimal `json:"percentage" db:"percentage"`
	CreatedAt  time.Time           `json:"created_at" db:"created_at"`
}

// SplitInput is one participant as submitted with a new expense. Amount is
// read for EXACT splits and Percentage for PERCENTAGE splits.
type SplitInput struct {
	UserID     string           `json:"user_id"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// NewExpense is the create-expense request body.
type NewExpense struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitType   SplitType       `json:"split_type"`
	CreatedBy   string          `json:"created_by"`
	Splits      []SplitInput    `json:"splits"`
}
