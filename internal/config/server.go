package config

import (
	"net"
	"strings"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Host is the listen host. Empty listens on every interface.
	Host string `env:"SERVER_HOST" validate:"omitempty,hostname|ip"`
	// Port is the listen port, with or without a leading colon.
	Port string `env:"SERVER_PORT" validate:"required"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT"     validate:"gt=0"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT"    validate:"gt=0"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT"     validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" validate:"gt=0"`

	// TrustedProxies lists the proxy addresses or CIDR ranges whose
	// forwarding headers are used for the client IP. Empty trusts none.
	TrustedProxies []string `env:"SERVER_TRUSTED_PROXIES" validate:"dive,ip|cidr"`
}

// LoadServerConfigFromEnv loads server configuration from environment variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		TrustedProxies:  GetEnvList("SERVER_TRUSTED_PROXIES"),
	}
}

// Address returns the listen address for net/http.
func (c ServerConfig) Address() string {
	if c.Host == "" {
		return c.Port
	}
	return net.JoinHostPort(c.Host, strings.TrimPrefix(c.Port, ":"))
}

// Validate validates server configuration.
func (c ServerConfig) Validate() error {
	return check(c)
}
