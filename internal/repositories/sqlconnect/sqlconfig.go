package sqlconnect

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"expense_share/pkg/utils"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config selects the database backend. MySQL uses the credential fields,
// SQLite only SQLitePath.
type Config struct {
	Driver     string
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	SQLitePath string
}

// ConnectDb opens and pings the configured database.
func ConnectDb(cfg Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case DriverMySQL, "":
		utils.Logger.Info("Connecting to MariaDB...")
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		db, err = sql.Open(DriverMySQL, dsn)
	case DriverSQLite:
		utils.Logger.Infof("Opening SQLite database at %s", cfg.SQLitePath)
		db, err = openSQLite(cfg.SQLitePath)
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to open DB connection")
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping DB")
	}

	utils.Logger.WithField("driver", cfg.Driver).Info("connected to database")
	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("SQLITE_PATH is required for the sqlite driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sql.Open(DriverSQLite, path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// one writer; foreign_keys is per connection
	db.SetMaxOpenConns(1)
	return db, nil
}
