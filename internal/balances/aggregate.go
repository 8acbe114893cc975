package balances

import (
	"time"

	"expense_share/internal/models"

	"github.com/shopspring/decimal"
)

// PairwiseBalances maps debtor id to creditor id to the running amount the
// debtor owes the creditor. Both directions of a pair may be present; they
// are netted only when formatted.
type PairwiseBalances map[string]map[string]decimal.Decimal

func (b PairwiseBalances) add(debtor, creditor string, amount decimal.Decimal) {
	row, ok := b[debtor]
	if !ok {
		row = make(map[string]decimal.Decimal)
		b[debtor] = row
	}
	row[creditor] = row[creditor].Add(amount)
}

// Get returns how much debtor owes creditor before netting, zero if nothing.
func (b PairwiseBalances) Get(debtor, creditor string) decimal.Decimal {
	return b[debtor][creditor]
}

// ExpenseDetail is one expense line behind a counterparty balance.
type ExpenseDetail struct {
	ExpenseID   string           `json:"expense_id"`
	ExpenseName string           `json:"expense_name"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	SplitAmount decimal.Decimal  `json:"split_amount"`
	SplitType   models.SplitType `json:"split_type"`
	Direction   string           `json:"direction,omitempty"`
}

// Counterparty accumulates a user's position against one other user.
// Total is positive when the other user owes, negative when the user owes.
type Counterparty struct {
	Total   decimal.Decimal
	Details []ExpenseDetail
}

type UserSummary struct {
	UserID         string
	Paid           decimal.Decimal
	Owed           decimal.Decimal
	Counterparties map[string]*Counterparty
}

func (s UserSummary) Net() decimal.Decimal {
	return s.Paid.Sub(s.Owed)
}

func splitsByExpense(splits []models.Split) map[string][]models.Split {
	idx := make(map[string][]models.Split)
	for _, s := range splits {
		idx[s.ExpenseID] = append(idx[s.ExpenseID], s)
	}
	return idx
}

// Aggregate folds every expense into debts owed to its creator: each
// participant other than the creator owes the creator their split amount.
// A non-empty userID keeps only expenses created by, or splits belonging to,
// that user.
func Aggregate(expenses []models.Expense, splits []models.Split, userID string) PairwiseBalances {
	byExpense := splitsByExpense(splits)
	balances := make(PairwiseBalances)

	for _, e := range expenses {
		for _, s := range byExpense[e.ID] {
			if userID != "" && s.UserID != userID && e.CreatedBy != userID {
				continue
			}
			if s.UserID == e.CreatedBy {
				continue
			}
			balances.add(s.UserID, e.CreatedBy, s.Amount)
		}
	}

	return balances
}

// AggregateUser walks every expense from userID's point of view. Expenses
// the user created count in full towards Paid and credit each other
// participant's share; expenses created by someone else debit the user's own
// share against the creator.
func AggregateUser(expenses []models.Expense, splits []models.Split, userID string) UserSummary {
	byExpense := splitsByExpense(splits)
	summary := UserSummary{
		UserID:         userID,
		Counterparties: make(map[string]*Counterparty),
	}

	counterparty := func(id string) *Counterparty {
		c, ok := summary.Counterparties[id]
		if !ok {
			c = &Counterparty{}
			summary.Counterparties[id] = c
		}
		return c
	}

	for _, e := range expenses {
		if e.CreatedBy == userID {
			summary.Paid = summary.Paid.Add(e.Amount)
			for _, s := range byExpense[e.ID] {
				if s.UserID == userID {
					continue
				}
				c := counterparty(s.UserID)
				c.Total = c.Total.Add(s.Amount)
				c.Details = append(c.Details, detailFor(e, s))
			}
			continue
		}

		for _, s := range byExpense[e.ID] {
			if s.UserID != userID {
				continue
			}
			summary.Owed = summary.Owed.Add(s.Amount)
			c := counterparty(e.CreatedBy)
			c.Total = c.Total.Sub(s.Amount)
			c.Details = append(c.Details, detailFor(e, s))
		}
	}

	return summary
}

func detailFor(e models.Expense, s models.Split) ExpenseDetail {
	return ExpenseDetail{
		ExpenseID:   e.ID,
		ExpenseName: e.Name,
		Description: e.Description,
		Date:        e.CreatedAt,
		TotalAmount: e.Amount,
		SplitAmount: s.Amount,
		SplitType:   e.SplitType,
	}
}
