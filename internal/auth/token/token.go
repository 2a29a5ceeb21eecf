// Package token issues and verifies the bearer tokens of the JSON API.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/config"
)

const issuerName = "as_manager"

var (
	// ErrInvalidToken is returned for malformed, forged or expired tokens.
	ErrInvalidToken = apperror.New(apperror.CodeInvalidLogin, "invalid or expired token")
	// ErrDisabled is returned when no signing secret is configured.
	ErrDisabled = apperror.New(apperror.CodeInvalid, "api tokens are not enabled")
)

// Claims identify the player a token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	TagName string `json:"tag"`
}

// PlayerID returns the player id stored in the subject claim.
func (c *Claims) PlayerID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Issuer signs tokens with HMAC-SHA256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// New creates an issuer from the auth configuration.
func New(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Enabled reports whether a signing secret is configured.
func (i *Issuer) Enabled() bool {
	return len(i.secret) > 0
}

// Issue returns a signed token for the player and its expiry time.
func (i *Issuer) Issue(playerID int64, tagName string) (string, time.Time, error) {
	if !i.Enabled() {
		return "", time.Time{}, ErrDisabled
	}
	now := i.now().UTC()
	expires := now.Add(i.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   strconv.FormatInt(playerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		TagName: tagName,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies raw and returns its claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	if !i.Enabled() {
		return nil, ErrDisabled
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInvalidLogin, ErrInvalidToken.Message, err)
	}
	if _, err := claims.PlayerID(); err != nil {
		return nil, err
	}
	return &claims, nil
}
