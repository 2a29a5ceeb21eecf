package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, cfg.ConnMaxIdleTime)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_MAX_IDLE_CONNS", "8")
	t.Setenv("DB_CONN_MAX_LIFETIME", "")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "1m")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, 40, cfg.MaxOpenConns)
	assert.Equal(t, 8, cfg.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, time.Minute, cfg.ConnMaxIdleTime)
}

func TestSetupConnectionPool(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg:  Config{MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: time.Minute},
		},
		{
			name: "idle equal to open",
			cfg:  Config{MaxOpenConns: 10, MaxIdleConns: 10},
		},
		{
			name: "zero idle",
			cfg:  Config{MaxOpenConns: 10},
		},
		{
			name:    "zero open",
			cfg:     Config{MaxOpenConns: 0, MaxIdleConns: 5},
			wantErr: "MaxOpenConns must be greater than 0",
		},
		{
			name:    "negative idle",
			cfg:     Config{MaxOpenConns: 10, MaxIdleConns: -1},
			wantErr: "MaxIdleConns must be non-negative",
		},
		{
			name:    "idle above open",
			cfg:     Config{MaxOpenConns: 5, MaxIdleConns: 10},
			wantErr: "MaxIdleConns (10) cannot be greater than MaxOpenConns (5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := createTestDB(t)

			err := SetupConnectionPool(db, tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.MaxOpenConns, sqlDB.Stats().MaxOpenConnections)
		})
	}
}
