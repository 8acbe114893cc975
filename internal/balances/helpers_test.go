package balances

import (
	"testing"
	"time"

	"expense_share/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func expense(id, creator, amount string, st models.SplitType, daysAfter int) models.Expense {
	return models.Expense{
		ID:        id,
		Name:      "expense " + id,
		Amount:    dec(amount),
		SplitType: st,
		CreatedBy: creator,
		CreatedAt: base.AddDate(0, 0, daysAfter),
	}
}

func split(expenseID, userID, amount string) models.Split {
	return models.Split{ExpenseID: expenseID, UserID: userID, Amount: dec(amount)}
}
