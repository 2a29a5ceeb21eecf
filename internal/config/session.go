package config

import (
	"fmt"
	"time"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// SessionConfig holds login session configuration.
type SessionConfig struct {
	// Store selects the session backend (memory, redis).
	Store string
	// RedisURL is the redis connection URL, used when Store is redis.
	RedisURL string
	// RedisPoolSize is the maximum number of redis connections.
	RedisPoolSize int
	// TTL is the lifetime of a session.
	TTL time.Duration
	// CookieName is the name of the session cookie.
	CookieName string
	// CookieSecure marks the session cookie as HTTPS only.
	CookieSecure bool
}

// LoadSessionConfigFromEnv loads session configuration from environment variables.
func LoadSessionConfigFromEnv() SessionConfig {
	return SessionConfig{
		Store:         GetEnv("SESSION_STORE", SessionStoreMemory),
		RedisURL:      GetEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPoolSize: GetEnvInt("REDIS_POOL_SIZE", 10),
		TTL:           GetEnvDuration("SESSION_TTL", 24*time.Hour),
		CookieName:    GetEnv("SESSION_COOKIE_NAME", "as_session"),
		CookieSecure:  GetEnvBool("SESSION_COOKIE_SECURE", false),
	}
}

// Validate validates session configuration.
func (c SessionConfig) Validate() error {
	switch c.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE is redis")
		}
		if c.RedisPoolSize <= 0 {
			return fmt.Errorf("REDIS_POOL_SIZE must be greater than 0")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE: %s (must be: memory, redis)", c.Store)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be greater than 0")
	}
	if c.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	return nil
}
