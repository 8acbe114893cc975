package balances

import (
	"sort"
	"time"

	"expense_share/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DirectionOwes    = "owes"
	DirectionOwesYou = "owes_you"
	DirectionYouOwe  = "you_owe"

	StatusPaid = "paid"
	StatusOwes = "owes"
)

type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserNames indexes display names by user id.
func UserNames(users []models.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

func ref(id string, names map[string]string) UserRef {
	return UserRef{ID: id, Name: names[id]}
}

// PairBalance is the net debt between two users. FromUser owes ToUser Amount.
type PairBalance struct {
	FromUser  UserRef         `json:"from_user"`
	ToUser    UserRef         `json:"to_user"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
}

type pairKey struct{ lo, hi string }

func canonical(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// FormatPairwise nets both directions of every pair and returns one record
// per pair whose net exceeds tolerance, ordered by the sorted pair ids.
func FormatPairwise(balances PairwiseBalances, names map[string]string) []PairBalance {
	seen := make(map[pairKey]struct{})
	var keys []pairKey
	for debtor, row := range balances {
		for creditor := range row {
			k := canonical(debtor, creditor)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lo != keys[j].lo {
			return keys[i].lo < keys[j].lo
		}
		return keys[i].hi < keys[j].hi
	})

	out := make([]PairBalance, 0, len(keys))
	for _, k := range keys {
		net := balances.Get(k.lo, k.hi).Sub(balances.Get(k.hi, k.lo))
		if isSettled(net) {
			continue
		}
		from, to := k.lo, k.hi
		if net.IsNegative() {
			from, to = k.hi, k.lo
		}
		out = append(out, PairBalance{
			FromUser:  ref(from, names),
			ToUser:    ref(to, names),
			Amount:    net.Abs(),
			Direction: DirectionOwes,
		})
	}
	return out
}

type CounterpartyBalance struct {
	User           UserRef         `json:"user"`
	Amount         decimal.Decimal `json:"amount"`
	Direction      string          `json:"direction"`
	ExpenseDetails []ExpenseDetail `json:"expense_details"`
}

type UserBalanceReport struct {
	User       UserRef               `json:"user"`
	TotalPaid  decimal.Decimal       `json:"total_paid"`
	TotalOwed  decimal.Decimal       `json:"total_owed"`
	NetBalance decimal.Decimal       `json:"net_balance"`
	Balances   []CounterpartyBalance `json:"balances"`
}

// FormatUser turns a UserSummary into a statement. Settled counterparties
// are dropped; the rest are ordered by name then id, each with its expense
// lines newest first.
func FormatUser(summary UserSummary, names map[string]string) UserBalanceReport {
	report := UserBalanceReport{
		User:       ref(summary.UserID, names),
		TotalPaid:  summary.Paid,
		TotalOwed:  summary.Owed,
		NetBalance: summary.Net(),
		Balances:   []CounterpartyBalance{},
	}

	for id, c := range summary.Counterparties {
		if isSettled(c.Total) {
			continue
		}
		direction := DirectionYouOwe
		if c.Total.IsPositive() {
			direction = DirectionOwesYou
		}

		details := make([]ExpenseDetail, len(c.Details))
		for i, d := range c.Details {
			d.Direction = direction
			details[i] = d
		}
		sort.SliceStable(details, func(i, j int) bool {
			return details[i].Date.After(details[j].Date)
		})

		report.Balances = append(report.Balances, CounterpartyBalance{
			User:           ref(id, names),
			Amount:         c.Total.Abs(),
			Direction:      direction,
			ExpenseDetails: details,
		})
	}

	sort.Slice(report.Balances, func(i, j int) bool {
		a, b := report.Balances[i].User, report.Balances[j].User
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return report
}

type SplitView struct {
	User       UserRef             `json:"user"`
	Amount     decimal.Decimal     `json:"amount"`
	Percentage decimal.NullDecimal `json:"percentage"`
	Status     string              `json:"status"`
}

type ExpenseView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	SplitType   models.SplitType `json:"split_type"`
	PaidBy      UserRef          `json:"paid_by"`
	CreatedAt   time.Time        `json:"created_at"`
	Splits      []SplitView      `json:"splits"`
}

type OverallExpenses struct {
	Expenses       []ExpenseView   `json:"expenses"`
	Count          int             `json:"count"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	AverageExpense decimal.Decimal `json:"average_expense"`
}

// FormatOverall lists every expense newest first with its labelled splits,
// plus the total and the mean expense amount rounded to cents.
func FormatOverall(expenses []models.Expense, splits []models.Split, names map[string]string) OverallExpenses {
	byExpense := splitsByExpense(splits)
	overall := OverallExpenses{
		Expenses:       make([]ExpenseView, 0, len(expenses)),
		TotalExpenses:  decimal.Zero,
		AverageExpense: decimal.Zero,
	}

	for _, e := range expenses {
		view := ExpenseView{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Amount:      e.Amount,
			SplitType:   e.SplitType,
			PaidBy:      ref(e.CreatedBy, names),
			CreatedAt:   e.CreatedAt,
			Splits:      []SplitView{},
		}
		for _, s := range byExpense[e.ID] {
			status := StatusOwes
			if s.UserID == e.CreatedBy {
				status = StatusPaid
			}
			view.Splits = append(view.Splits, SplitView{
				User:       ref(s.UserID, names),
				Amount:     s.Amount,
				Percentage: s.Percentage,
				Status:     status,
			})
		}
		overall.TotalExpenses = overall.TotalExpenses.Add(e.Amount)
		overall.Expenses = append(overall.Expenses, view)
	}

	overall.Count = len(overall.Expenses)
	if overall.Count > 0 {
		overall.AverageExpense = overall.TotalExpenses.Div(decimal.NewFromInt(int64(overall.Count))).Round(2)
	}

	sort.SliceStable(overall.Expenses, func(i, j int) bool {
		return overall.Expenses[i].CreatedAt.After(overall.Expenses[j].CreatedAt)
	})

	return overall
}
