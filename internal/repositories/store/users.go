package store

import (
	"context"
	"database/sql"
	"errors"

	"expense_share/internal/models"
	"expense_share/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var userColumns = []string{"id", "name", "email", "mobile", "created_at"}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u       models.User
		created int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &created); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = fromMillis(created)
	return u, nil
}

// CreateUser inserts u, filling in its ID and CreatedAt when unset.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.timestamp()
	}

	query := psql.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, u.Mobile, u.CreatedAt.UnixMilli())

	if _, err := query.RunWith(s.db).ExecContext(ctx); err != nil {
		if isDuplicate(err) {
			return utils.ErrDuplicate
		}
		return utils.NewPersistenceError("create user", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	query := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id})

	u, err := scanUser(query.RunWith(s.db).QueryRowContext(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, utils.NewNotFoundError("user", id)
	}
	if err != nil {
		return models.User{}, utils.NewPersistenceError("get user", err)
	}
	return u, nil
}

// ListUsers returns every user, oldest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	query := psql.Select(userColumns...).
		From("users").
		OrderBy("created_at", "id")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, utils.NewPersistenceError("list users", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, utils.NewPersistenceError("list users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.NewPersistenceError("list users", err)
	}
	return users, nil
}

// MissingUsers returns the ids in ids that have no user row, in input order.
func (s *Store) MissingUsers(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := psql.Select("id").
		From("users").
		Where(sq.Eq{"id": ids})

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, utils.NewPersistenceError("check users", err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, utils.NewPersistenceError("check users", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, utils.NewPersistenceError("check users", err)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// UpdateUser applies the non-nil fields of upd and returns the stored user.
func (s *Store) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (models.User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return models.User{}, err
	}

	if !upd.Empty() {
		set := map[string]any{}
		if upd.Name != nil {
			set["name"] = *upd.Name
		}
		if upd.Mobile != nil {
			set["mobile"] = *upd.Mobile
		}

		query := psql.Update("users").
			SetMap(set).
			Where(sq.Eq{"id": id})

		if _, err := query.RunWith(s.db).ExecContext(ctx); err != nil {
			return models.User{}, utils.NewPersistenceError("update user", err)
		}
	}

	return s.GetUser(ctx, id)
}
