package config

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_PORT", "DB_SSLMODE", "DB_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		clearDBEnv(t)

		cfg := LoadConfigFromEnv()
		assert.Equal(t, Config{
			Host:     "localhost",
			User:     "postgres",
			Password: "postgres",
			DBName:   "as_manager",
			Port:     "5432",
			SSLMode:  "disable",
			TimeZone: "UTC",
		}, cfg)
	})

	t.Run("partial override", func(t *testing.T) {
		clearDBEnv(t)
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "6543")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "6543", cfg.Port)
		assert.Equal(t, "as_manager", cfg.DBName)
	})

	t.Run("database url", func(t *testing.T) {
		clearDBEnv(t)
		t.Setenv("DATABASE_URL", "postgres://clan:pw@db:5432/roster")

		cfg := LoadConfigFromEnv()
		assert.Equal(t, "postgres://clan:pw@db:5432/roster", BuildDSN(cfg))
	})
}

func TestBuildDSN(t *testing.T) {
	cfg := Config{
		Host:     "db.example.com",
		User:     "admin",
		Password: "secret123",
		DBName:   "roster",
		Port:     "5433",
		SSLMode:  "require",
		TimeZone: "Europe/Berlin",
	}
	assert.Equal(t,
		"host=db.example.com user=admin password=secret123 dbname=roster port=5433 sslmode=require TimeZone=Europe/Berlin",
		BuildDSN(cfg))
}

func TestSanitizeError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, SanitizeError(nil, Config{Password: "secret"}))
	})

	t.Run("password in dsn", func(t *testing.T) {
		cfg := Config{Host: "localhost", User: "admin", Password: "mypass", DBName: "roster"}
		err := SanitizeError(fmt.Errorf("failed to connect to `%s`", BuildDSN(cfg)), cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to database")
		assert.Contains(t, err.Error(), "password=***")
		assert.NotContains(t, err.Error(), "mypass")
	})

	t.Run("password in url", func(t *testing.T) {
		cfg := Config{URL: "postgres://clan:hunter22@db:5432/roster"}
		err := SanitizeError(fmt.Errorf("dial %s: refused", cfg.URL), cfg)

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "hunter22")
		assert.Contains(t, err.Error(), "clan:***@db")
	})
}

func TestLoadRetryConfigFromEnv(t *testing.T) {
	t.Setenv("DB_RETRY_MAX_ATTEMPTS", "3")
	t.Setenv("DB_RETRY_INITIAL_DELAY", "250ms")
	t.Setenv("DB_RETRY_MAX_DELAY", "")
	t.Setenv("DB_RETRY_MULTIPLIER", "1.5")

	cfg := LoadRetryConfigFromEnv()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.InDelta(t, 1.5, cfg.Multiplier, 0.0001)
	assert.NotEmpty(t, cfg.RetryableErrors)
}
