// Package store persists users, expenses and expense splits. The same
// queries run against MySQL and SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"expense_share/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const mysqlDuplicateEntry = 1062

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Ping reports whether the underlying database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return utils.NewPersistenceError("ping database", err)
	}
	return nil
}

// timestamp returns the current time at the precision it is stored with.
func (s *Store) timestamp() time.Time {
	return time.UnixMilli(s.now().UnixMilli()).UTC()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type rowScanner interface {
	Scan(dest ...any) error
}
