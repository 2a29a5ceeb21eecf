package config

import (
	"fmt"
	"time"
)

// Password hashing algorithms.
const (
	HasherSHA3   = "sha3"
	HasherBcrypt = "bcrypt"
)

// AuthConfig holds credential and API token configuration.
type AuthConfig struct {
	// Hasher is the algorithm used for new password digests (sha3, bcrypt).
	Hasher string
	// BcryptCost is the bcrypt work factor.
	BcryptCost int
	// TokenSecret signs API bearer tokens. Empty disables token issuance.
	TokenSecret string
	// TokenTTL is the lifetime of an API bearer token.
	TokenTTL time.Duration
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Hasher:      GetEnv("AUTH_HASHER", HasherSHA3),
		BcryptCost:  GetEnvInt("AUTH_BCRYPT_COST", 10),
		TokenSecret: GetEnv("AUTH_TOKEN_SECRET", ""),
		TokenTTL:    GetEnvDuration("AUTH_TOKEN_TTL", time.Hour),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.Hasher != HasherSHA3 && c.Hasher != HasherBcrypt {
		return fmt.Errorf("invalid AUTH_HASHER: %s (must be: sha3, bcrypt)", c.Hasher)
	}
	if c.Hasher == HasherBcrypt && (c.BcryptCost < 4 || c.BcryptCost > 31) {
		return fmt.Errorf("AUTH_BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.TokenSecret != "" && len(c.TokenSecret) < 16 {
		return fmt.Errorf("AUTH_TOKEN_SECRET must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be greater than 0")
	}
	return nil
}

// TokensEnabled reports whether API bearer tokens can be issued.
func (c AuthConfig) TokensEnabled() bool {
	return c.TokenSecret != ""
}
