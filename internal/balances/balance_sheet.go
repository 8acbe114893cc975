package balances

import (
	"sort"
	"time"

	"expense_share/internal/models"

	"github.com/shopspring/decimal"
)

type SheetOwnExpense struct {
	Date         time.Time
	Name         string
	Amount       decimal.Decimal
	SplitType    models.SplitType
	Participants []string
}

type SheetOtherExpense struct {
	Date      time.Time
	PaidBy    string
	Name      string
	Amount    decimal.Decimal
	SplitType models.SplitType
	YourShare decimal.Decimal
}

// BalanceSheet is everything the printable statement for one user shows.
type BalanceSheet struct {
	UserID         string
	UserName       string
	TotalPaid      decimal.Decimal
	TotalOwed      decimal.Decimal
	NetBalance     decimal.Decimal
	OwnExpenses    []SheetOwnExpense
	OthersExpenses []SheetOtherExpense
}

// BuildBalanceSheet collects the expenses userID created and the expenses
// others created that userID has a share in, both newest first.
func BuildBalanceSheet(expenses []models.Expense, splits []models.Split, names map[string]string, userID string) BalanceSheet {
	summary := AggregateUser(expenses, splits, userID)
	sheet := BalanceSheet{
		UserID:     userID,
		UserName:   names[userID],
		TotalPaid:  summary.Paid,
		TotalOwed:  summary.Owed,
		NetBalance: summary.Net(),
	}

	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	byExpense := splitsByExpense(splits)
	for _, e := range sorted {
		if e.CreatedBy == userID {
			own := SheetOwnExpense{
				Date:      e.CreatedAt,
				Name:      e.Name,
				Amount:    e.Amount,
				SplitType: e.SplitType,
			}
			for _, s := range byExpense[e.ID] {
				own.Participants = append(own.Participants, names[s.UserID])
			}
			sheet.OwnExpenses = append(sheet.OwnExpenses, own)
			continue
		}

		for _, s := range byExpense[e.ID] {
			if s.UserID != userID {
				continue
			}
			sheet.OthersExpenses = append(sheet.OthersExpenses, SheetOtherExpense{
				Date:      e.CreatedAt,
				PaidBy:    names[e.CreatedBy],
				Name:      e.Name,
				Amount:    e.Amount,
				SplitType: e.SplitType,
				YourShare: s.Amount,
			})
			break
		}
	}

	return sheet
}
