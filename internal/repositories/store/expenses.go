package store

import (
	"context"
	"database/sql"
	"errors"

	"expense_share/internal/models"
	"expense_share/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	expenseColumns = []string{"id", "name", "description", "amount", "split_type", "created_by", "created_at"}
	splitColumns   = []string{"id", "expense_id", "user_id", "amount", "percentage", "created_at"}
)

func scanExpense(row rowScanner) (models.Expense, error) {
	var (
		e       models.Expense
		created int64
	)
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Amount, &e.SplitType, &e.CreatedBy, &created)
	if err != nil {
		return models.Expense{}, err
	}
	e.CreatedAt = fromMillis(created)
	return e, nil
}

func scanSplit(row rowScanner) (models.Split, error) {
	var (
		sp      models.Split
		created int64
	)
	err := row.Scan(&sp.ID, &sp.ExpenseID, &sp.UserID, &sp.Amount, &sp.Percentage, &created)
	if err != nil {
		return models.Split{}, err
	}
	sp.CreatedAt = fromMillis(created)
	return sp, nil
}

// CreateExpense stores e and its splits in one transaction. IDs and
// timestamps left empty are generated and written back into e and splits.
//
// If a write fails the transaction is rolled back and a PersistenceError is
// returned. Only when the rollback fails as well is an IntegrityGapError
// returned, since the expense row may then be left without its splits.
func (s *Store) CreateExpense(ctx context.Context, e *models.Expense, splits []models.Split) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.timestamp()
	}
	for i := range splits {
		if splits[i].ID == "" {
			splits[i].ID = uuid.NewString()
		}
		splits[i].ExpenseID = e.ID
		splits[i].CreatedAt = e.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return utils.NewPersistenceError("begin transaction", err)
	}

	insertExpense := psql.Insert("expenses").
		Columns(expenseColumns...).
		Values(e.ID, e.Name, e.Description, e.Amount, string(e.SplitType), e.CreatedBy, e.CreatedAt.UnixMilli())

	if _, err := insertExpense.RunWith(tx).ExecContext(ctx); err != nil {
		return abort(tx, e.ID, "create expense", err)
	}

	for i, sp := range splits {
		insertSplit := psql.Insert("expense_splits").
			Columns("id", "expense_id", "user_id", "position", "amount", "percentage", "created_at").
			Values(sp.ID, sp.ExpenseID, sp.UserID, i, sp.Amount, sp.Percentage, sp.CreatedAt.UnixMilli())

		if _, err := insertSplit.RunWith(tx).ExecContext(ctx); err != nil {
			return abort(tx, e.ID, "create expense split", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return utils.NewPersistenceError("commit expense", err)
	}
	return nil
}

type rollbacker interface {
	Rollback() error
}

func abort(tx rollbacker, expenseID, op string, cause error) error {
	rbErr := tx.Rollback()
	if rbErr == nil || errors.Is(rbErr, sql.ErrTxDone) {
		return utils.NewPersistenceError(op, cause)
	}

	utils.Logger.WithFields(logrus.Fields{
		"expense_id":     expenseID,
		"error":          cause.Error(),
		"rollback_error": rbErr.Error(),
	}).Error("expense write failed and could not be rolled back")

	return &utils.IntegrityGapError{ExpenseID: expenseID, Err: cause, RollbackErr: rbErr}
}

// GetExpense returns one expense with its splits in entry order.
func (s *Store) GetExpense(ctx context.Context, id string) (models.ExpenseWithSplits, error) {
	query := psql.Select(expenseColumns...).
		From("expenses").
		Where(sq.Eq{"id": id})

	e, err := scanExpense(query.RunWith(s.db).QueryRowContext(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExpenseWithSplits{}, utils.NewNotFoundError("expense", id)
	}
	if err != nil {
		return models.ExpenseWithSplits{}, utils.NewPersistenceError("get expense", err)
	}

	splits, err := s.ListSplitsByExpense(ctx, id)
	if err != nil {
		return models.ExpenseWithSplits{}, err
	}
	return models.ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

// ListExpenses returns every expense, newest first.
func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	query := psql.Select(expenseColumns...).
		From("expenses").
		OrderBy("created_at DESC", "id")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, utils.NewPersistenceError("list expenses", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, utils.NewPersistenceError("list expenses", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.NewPersistenceError("list expenses", err)
	}
	return expenses, nil
}

// ListSplits returns every split grouped by expense, each group in entry order.
func (s *Store) ListSplits(ctx context.Context) ([]models.Split, error) {
	return s.listSplits(ctx, "list splits", nil)
}

func (s *Store) ListSplitsByExpense(ctx context.Context, expenseID string) ([]models.Split, error) {
	return s.listSplits(ctx, "list expense splits", sq.Eq{"expense_id": expenseID})
}

func (s *Store) listSplits(ctx context.Context, op string, where sq.Sqlizer) ([]models.Split, error) {
	query := psql.Select(splitColumns...).
		From("expense_splits").
		OrderBy("expense_id", "position")
	if where != nil {
		query = query.Where(where)
	}

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, utils.NewPersistenceError(op, err)
	}
	defer rows.Close()

	splits := make([]models.Split, 0)
	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return nil, utils.NewPersistenceError(op, err)
		}
		splits = append(splits, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.NewPersistenceError(op, err)
	}
	return splits, nil
}
