package sqlconnect

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// schema is executed one statement at a time: the MySQL driver rejects
// multi-statement Exec unless multiStatements is set in the DSN.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		mobile VARCHAR(20) NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT,
		amount DECIMAL(12,2) NOT NULL,
		split_type VARCHAR(16) NOT NULL,
		created_by CHAR(36) NOT NULL,
		created_at BIGINT NOT NULL,
		FOREIGN KEY (created_by) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS expense_splits (
		id CHAR(36) NOT NULL PRIMARY KEY,
		expense_id CHAR(36) NOT NULL,
		user_id CHAR(36) NOT NULL,
		position INT NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		percentage DECIMAL(5,2) NULL,
		created_at BIGINT NOT NULL,
		FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
}

// RunMigrations creates any missing tables. It is safe to run on every start.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "run migrations")
		}
	}
	return nil
}
