package config

import (
	"errors"
	"fmt"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `validate:"-"`
	Logger  LoggerConfig  `validate:"-"`
	Session SessionConfig `validate:"-"`
	Auth    AuthConfig    `validate:"-"`
	// GinMode is the gin framework mode (debug, release, test).
	GinMode string `env:"GIN_MODE" validate:"oneof=debug release test"`
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:  LoadServerConfigFromEnv(),
		Logger:  LoadLoggerConfigFromEnv(),
		Session: LoadSessionConfigFromEnv(),
		Auth:    LoadAuthConfigFromEnv(),
		GinMode: GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates every section and reports all failures at once.
func (c Config) Validate() error {
	sections := []struct {
		name string
		err  error
	}{
		{"server", c.Server.Validate()},
		{"logger", c.Logger.Validate()},
		{"session", c.Session.Validate()},
		{"auth", c.Auth.Validate()},
	}

	var errs []error
	for _, s := range sections {
		if s.err != nil {
			errs = append(errs, fmt.Errorf("%s config validation failed: %w", s.name, s.err))
		}
	}
	if err := check(c); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Summary returns the non-secret settings as zap key-value pairs for the
// startup log line.
func (c Config) Summary() []any {
	return []any{
		"address", c.Server.Address(),
		"gin_mode", c.GinMode,
		"log_level", c.Logger.Level,
		"access_log", c.Logger.AccessLog,
		"session_store", c.Session.Store,
		"session_ttl", c.Session.TTL,
		"hasher", c.Auth.Hasher,
		"api_tokens", c.Auth.TokensEnabled(),
		"trusted_proxies", len(c.Server.TrustedProxies),
	}
}
