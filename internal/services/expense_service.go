package services

import (
	"context"
	"fmt"
	"strings"

	"expense_share/internal/balances"
	"expense_share/internal/models"
	"expense_share/pkg/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ExpenseService struct {
	store Store
}

func NewExpenseService(store Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create validates req, expands its splits and stores the expense with its
// splits atomically.
func (s *ExpenseService) Create(ctx context.Context, req models.NewExpense) (models.ExpenseWithSplits, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := balances.ValidateExpense(req); err != nil {
		return models.ExpenseWithSplits{}, err
	}

	ids := []string{req.CreatedBy}
	if err := ValidateUserID(req.CreatedBy); err != nil {
		return models.ExpenseWithSplits{}, utils.NewValidationError("created_by", "must be a valid UUID")
	}
	for i, sp := range req.Splits {
		if err := ValidateUserID(sp.UserID); err != nil {
			return models.ExpenseWithSplits{}, utils.NewValidationError(fmt.Sprintf("splits[%d].user_id", i), "must be a valid UUID")
		}
		if sp.UserID != req.CreatedBy {
			ids = append(ids, sp.UserID)
		}
	}

	missing, err := s.store.MissingUsers(ctx, ids)
	if err != nil {
		return models.ExpenseWithSplits{}, err
	}
	if len(missing) > 0 {
		return models.ExpenseWithSplits{}, utils.NewNotFoundError("user", missing[0])
	}

	expense := models.Expense{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		SplitType:   req.SplitType,
		CreatedBy:   req.CreatedBy,
	}
	splits := balances.Materialize(expense.ID, req.Amount, req.SplitType, req.Splits)

	if err := s.store.CreateExpense(ctx, &expense, splits); err != nil {
		return models.ExpenseWithSplits{}, err
	}

	expensesCreated.WithLabelValues(string(expense.SplitType)).Inc()
	utils.Logger.WithFields(logrus.Fields{
		"expense_id": expense.ID,
		"split_type": expense.SplitType,
		"splits":     len(splits),
	}).Info("expense created")

	return models.ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (models.ExpenseWithSplits, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.ExpenseWithSplits{}, utils.NewValidationError("expense_id", "invalid expense ID format, must be a valid UUID")
	}
	return s.store.GetExpense(ctx, id)
}

type snapshot struct {
	users    []models.User
	names    map[string]string
	expenses []models.Expense
	splits   []models.Split
}

func (s *ExpenseService) load(ctx context.Context) (snapshot, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return snapshot{}, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return snapshot{}, err
	}
	splits, err := s.store.ListSplits(ctx)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{
		users:    users,
		names:    balances.UserNames(users),
		expenses: expenses,
		splits:   splits,
	}, nil
}

func (s *ExpenseService) requireUser(ctx context.Context, id string) (models.User, error) {
	if err := ValidateUserID(id); err != nil {
		return models.User{}, err
	}
	return s.store.GetUser(ctx, id)
}

// Overall lists every expense with its labelled splits and totals.
func (s *ExpenseService) Overall(ctx context.Context) (balances.OverallExpenses, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return balances.OverallExpenses{}, err
	}
	return balances.FormatOverall(snap.expenses, snap.splits, snap.names), nil
}

// Pairwise returns net debts between users. A non-empty userID limits the
// result to expenses that user created or has a share in.
func (s *ExpenseService) Pairwise(ctx context.Context, userID string) ([]balances.PairBalance, error) {
	if userID != "" {
		if _, err := s.requireUser(ctx, userID); err != nil {
			return nil, err
		}
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return balances.FormatPairwise(balances.Aggregate(snap.expenses, snap.splits, userID), snap.names), nil
}

func (s *ExpenseService) UserBalances(ctx context.Context, userID string) (balances.UserBalanceReport, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return balances.UserBalanceReport{}, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return balances.UserBalanceReport{}, err
	}
	return balances.FormatUser(balances.AggregateUser(snap.expenses, snap.splits, userID), snap.names), nil
}

// BalanceSheet returns the printable statement for userID and the user it
// belongs to.
func (s *ExpenseService) BalanceSheet(ctx context.Context, userID string) (balances.BalanceSheet, models.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return balances.BalanceSheet{}, models.User{}, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return balances.BalanceSheet{}, models.User{}, err
	}
	return balances.BuildBalanceSheet(snap.expenses, snap.splits, snap.names, userID), user, nil
}

// Debtor is a user who still owes at least one other user.
type Debtor struct {
	User models.User
	Owes []balances.CounterpartyBalance
}

// Debtors lists every user with an outstanding you_owe balance, in user
// listing order.
func (s *ExpenseService) Debtors(ctx context.Context) ([]Debtor, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var debtors []Debtor
	for _, u := range snap.users {
		report := balances.FormatUser(balances.AggregateUser(snap.expenses, snap.splits, u.ID), snap.names)

		var owes []balances.CounterpartyBalance
		for _, b := range report.Balances {
			if b.Direction == balances.DirectionYouOwe {
				owes = append(owes, b)
			}
		}
		if len(owes) == 0 {
			continue
		}
		debtors = append(debtors, Debtor{User: u, Owes: owes})
	}
	return debtors, nil
}
