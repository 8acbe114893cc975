package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"expense_share/internal/repositories/sqlconnect"
	"expense_share/pkg/utils"
)

type Config struct {
	ServerPort     string
	Env            string
	LogLevel       string
	LogFile        string
	CertFile       string
	KeyFile        string
	RequestTimeout time.Duration
	ReminderCron   string
	CurrencyLabel  string

	DB   sqlconnect.Config
	SMTP utils.SMTPConfig
}

// TLS reports whether both a certificate and a key were configured.
func (c Config) TLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

func (c Config) LogOptions() utils.LogOptions {
	return utils.LogOptions{Level: c.LogLevel, Env: c.Env, File: c.LogFile}
}

// Load reads the configuration from the environment. Call godotenv first
// to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		ServerPort:    getenv("SERVER_PORT", ":3000"),
		Env:           getenv("APP_ENV", "development"),
		LogLevel:      strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFile:       os.Getenv("LOG_FILE"),
		CertFile:      os.Getenv("CERT_FILE"),
		KeyFile:       os.Getenv("KEY_FILE"),
		ReminderCron:  strings.TrimSpace(os.Getenv("REMINDER_CRON")),
		CurrencyLabel: getenv("CURRENCY_LABEL", "Rs."),
		DB: sqlconnect.Config{
			Driver:     strings.ToLower(getenv("DB_DRIVER", sqlconnect.DriverMySQL)),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Host:       getenv("DB_HOST", "127.0.0.1"),
			Port:       getenv("DB_PORT", "3306"),
			Name:       os.Getenv("DB_NAME"),
			SQLitePath: getenv("SQLITE_PATH", "data/expense_share.db"),
		},
		SMTP: utils.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			From:     os.Getenv("SMTP_EMAIL"),
			Password: os.Getenv("SMTP_PASS"),
		},
	}

	if !strings.Contains(cfg.ServerPort, ":") {
		cfg.ServerPort = ":" + cfg.ServerPort
	}

	timeout, err := atoi("REQUEST_TIMEOUT_SECONDS", 5)
	if err != nil {
		return Config{}, err
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive, got %d", timeout)
	}
	cfg.RequestTimeout = time.Duration(timeout) * time.Second

	if cfg.SMTP.Port, err = atoi("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}

	switch cfg.DB.Driver {
	case sqlconnect.DriverMySQL, sqlconnect.DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func atoi(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
