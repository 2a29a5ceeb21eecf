// Package hasher hashes and verifies player passwords.
//
// Two formats are understood: unsalted SHA3-512 hex digests and bcrypt
// hashes. New hashes use the configured algorithm; Verify accepts either,
// so switching algorithm keeps existing accounts working.
package hasher

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/sha3"

	"github.com/festy23/as_manager/internal/config"
)

// Hasher hashes passwords with one algorithm and verifies both.
type Hasher struct {
	algorithm  string
	bcryptCost int
}

// New creates a hasher from the auth configuration.
func New(cfg config.AuthConfig) (*Hasher, error) {
	switch cfg.Hasher {
	case config.HasherSHA3, config.HasherBcrypt:
	default:
		return nil, fmt.Errorf("unknown password hasher: %s", cfg.Hasher)
	}
	return &Hasher{algorithm: cfg.Hasher, bcryptCost: cfg.BcryptCost}, nil
}

// Hash returns the stored form of password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == config.HasherBcrypt {
		digest, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(digest), nil
	}
	return sha3Hex(password), nil
}

// Verify reports whether password matches stored.
// An empty stored value never matches.
func (h *Hasher) Verify(stored, password string) bool {
	if stored == "" {
		return false
	}
	if IsBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	candidate := sha3Hex(password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(candidate)) == 1
}

// IsBcrypt reports whether stored looks like a bcrypt hash.
func IsBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

func sha3Hex(password string) string {
	sum := sha3.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}
