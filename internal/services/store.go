package services

import (
	"context"

	"expense_share/internal/models"
)

// Store is the persistence the services need. *store.Store satisfies it.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (models.User, error)
	MissingUsers(ctx context.Context, ids []string) ([]string, error)

	CreateExpense(ctx context.Context, e *models.Expense, splits []models.Split) error
	GetExpense(ctx context.Context, id string) (models.ExpenseWithSplits, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ListSplits(ctx context.Context) ([]models.Split, error)
}
