// Package session holds login sessions and the stores that keep them.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/festy23/as_manager/internal/apperror"
)

const tokenBytes = 32

// ErrSessionNotFound is returned for unknown or expired tokens.
var ErrSessionNotFound = apperror.New(apperror.CodeInvalidLogin, "session not found or expired")

// Session is an authenticated login of one player.
type Session struct {
	Token     string    `json:"token"`
	PlayerID  int64     `json:"player_id"`
	TagName   string    `json:"tag_name"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by token.
type Store interface {
	// Save stores s until s.ExpiresAt.
	Save(ctx context.Context, s *Session) error
	// Get returns the session for token or ErrSessionNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// NewToken returns a random URL-safe session token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// New creates a session for a player, valid for ttl from now.
func New(playerID int64, tagName string, ttl time.Duration, now time.Time) (*Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		PlayerID:  playerID,
		TagName:   tagName,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session carried by ctx, or
// apperror.ErrMissingContext when there is none.
func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	if !ok || s == nil {
		return nil, apperror.ErrMissingContext
	}
	return s, nil
}
