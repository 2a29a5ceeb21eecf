package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/pkg/retry"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = 1

	db, err := Open(context.Background(), sqlite.Open(":memory:"), cfg, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	return db
}

func TestOpen(t *testing.T) {
	t.Run("opens with translated errors", func(t *testing.T) {
		db := openSQLite(t)
		defer func() { _ = Close(db) }()

		assert.True(t, db.Config.TranslateError)
		assert.Equal(t, "UTC", db.Config.NowFunc().Location().String())
	})

	t.Run("gives up when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		db, err := Open(ctx, sqlite.Open(":memory:"), retry.DefaultConfig(), zaptest.NewLogger(t).Sugar())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, db)
	})
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy connection", func(t *testing.T) {
		db := openSQLite(t)
		defer func() { _ = Close(db) }()

		assert.NoError(t, HealthCheck(ctx, db))
	})

	t.Run("nil database", func(t *testing.T) {
		err := HealthCheck(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database connection is nil")
	})

	t.Run("closed connection", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, Close(db))

		assert.Error(t, HealthCheck(ctx, db))
	})
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close(nil))

	db := openSQLite(t)
	require.NoError(t, Close(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}

func TestGetStats(t *testing.T) {
	db := openSQLite(t)
	defer func() { _ = Close(db) }()

	stats, err := GetStats(db)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.MaxOpenConnections, 0)

	stats, err = GetStats(nil)
	assert.Nil(t, stats)
	assert.Error(t, err)
}
