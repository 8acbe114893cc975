package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "APP_ENV", "LOG_LEVEL", "DB_DRIVER", "REQUEST_TIMEOUT_SECONDS",
		"SMTP_PORT", "CURRENCY_LABEL", "REMINDER_CRON", "CERT_FILE", "KEY_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "Rs.", cfg.CurrencyLabel)
	assert.Empty(t, cfg.ReminderCron)
	assert.False(t, cfg.TLS())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "12")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("CERT_FILE", "cert.pem")
	t.Setenv("KEY_FILE", "key.pem")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.DB.SQLitePath)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.Equal(t, "debug", cfg.LogOptions().Level)
	assert.True(t, cfg.TLS())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"timeout not a number": {"REQUEST_TIMEOUT_SECONDS", "soon"},
		"timeout zero":         {"REQUEST_TIMEOUT_SECONDS", "0"},
		"smtp port":            {"SMTP_PORT", "smtp"},
		"driver":               {"DB_DRIVER", "postgres"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
