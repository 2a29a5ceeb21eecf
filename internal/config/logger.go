package config

import (
	"net/http"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Access log modes select which HTTP requests the request logger writes.
const (
	AccessLogAll    = "all"
	AccessLogErrors = "errors"
	AccessLogOff    = "off"
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is the minimum level written (debug, info, warn, error).
	Level string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	// Format is json for log shippers or console for a terminal.
	Format string `env:"LOG_FORMAT" validate:"oneof=json console"`
	// Output is stdout, stderr or a file path.
	Output string `env:"LOG_OUTPUT" validate:"required"`
	// AccessLog selects the logged HTTP requests (all, errors, off).
	AccessLog string `env:"LOG_ACCESS" validate:"oneof=all errors off"`
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:     strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		Format:    GetEnv("LOG_FORMAT", "json"),
		Output:    GetEnv("LOG_OUTPUT", "stdout"),
		AccessLog: GetEnv("LOG_ACCESS", AccessLogAll),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	return check(c)
}

// ZapLevel returns the configured level. Unknown levels fall back to info.
func (c LoggerConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Development reports whether logs are meant for a developer terminal
// rather than a log shipper.
func (c LoggerConfig) Development() bool {
	return c.Format == "console" || c.ZapLevel() == zapcore.DebugLevel
}

// IsFile reports whether logs are written to a file rather than a standard stream.
func (c LoggerConfig) IsFile() bool {
	return c.Output != "" && c.Output != "stdout" && c.Output != "stderr"
}

// LogsRequest reports whether a request answered with status is written
// to the access log. An unset mode logs every request.
func (c LoggerConfig) LogsRequest(status int) bool {
	switch c.AccessLog {
	case AccessLogOff:
		return false
	case AccessLogErrors:
		return status >= http.StatusBadRequest
	default:
		return true
	}
}
