package config

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadLoggerConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "LOG_ACCESS"} {
			t.Setenv(key, "")
		}

		cfg := LoadLoggerConfigFromEnv()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
		assert.Equal(t, AccessLogAll, cfg.AccessLog)
		assert.False(t, cfg.IsFile())
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("LOG_OUTPUT", "/var/log/as_manager.log")
		t.Setenv("LOG_ACCESS", "errors")

		cfg := LoadLoggerConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, AccessLogErrors, cfg.AccessLog)
		assert.True(t, cfg.IsFile())
		require.NoError(t, cfg.Validate())
	})
}

func TestLoggerConfig_Validate(t *testing.T) {
	valid := LoggerConfig{Level: "info", Format: "json", Output: "stdout", AccessLog: AccessLogAll}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*LoggerConfig)
		message string
	}{
		{name: "level", mutate: func(c *LoggerConfig) { c.Level = "trace" }, message: "invalid LOG_LEVEL: trace (must be: debug, info, warn, error)"},
		{name: "format", mutate: func(c *LoggerConfig) { c.Format = "xml" }, message: "invalid LOG_FORMAT: xml (must be: json, console)"},
		{name: "output", mutate: func(c *LoggerConfig) { c.Output = "" }, message: "LOG_OUTPUT must not be empty"},
		{name: "access log", mutate: func(c *LoggerConfig) { c.AccessLog = "some" }, message: "invalid LOG_ACCESS: some (must be: all, errors, off)"},
	}
	for _, tt := range tests {
		t.Run("invalid "+tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.EqualError(t, cfg.Validate(), tt.message)
		})
	}

	t.Run("reports every field", func(t *testing.T) {
		err := LoggerConfig{Level: "trace", Format: "xml", Output: "stdout", AccessLog: AccessLogOff}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_LEVEL")
		assert.Contains(t, err.Error(), "LOG_FORMAT")
	})
}

func TestLoggerConfig_ZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, LoggerConfig{Level: "warn"}.ZapLevel())
	assert.Equal(t, zapcore.InfoLevel, LoggerConfig{Level: "loud"}.ZapLevel())
	assert.Equal(t, zapcore.InfoLevel, LoggerConfig{}.ZapLevel())
}

func TestLoggerConfig_Development(t *testing.T) {
	assert.False(t, LoggerConfig{Level: "info", Format: "json"}.Development())
	assert.False(t, LoggerConfig{Level: "error", Format: "json"}.Development())
	assert.True(t, LoggerConfig{Level: "debug", Format: "json"}.Development())
	assert.True(t, LoggerConfig{Level: "info", Format: "console"}.Development())
}

func TestLoggerConfig_LogsRequest(t *testing.T) {
	tests := []struct {
		mode   string
		status int
		want   bool
	}{
		{mode: "", status: http.StatusOK, want: true},
		{mode: AccessLogAll, status: http.StatusSeeOther, want: true},
		{mode: AccessLogErrors, status: http.StatusOK, want: false},
		{mode: AccessLogErrors, status: http.StatusNotFound, want: true},
		{mode: AccessLogErrors, status: http.StatusInternalServerError, want: true},
		{mode: AccessLogOff, status: http.StatusInternalServerError, want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LoggerConfig{AccessLog: tt.mode}.LogsRequest(tt.status), "%s %d", tt.mode, tt.status)
	}
}
