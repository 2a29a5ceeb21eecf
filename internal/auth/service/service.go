// Package service authenticates players and manages their sessions.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/auth/session"
	playerModel "github.com/festy23/as_manager/internal/player/model"
)

// Login failures. ErrUnknownUser and ErrPasswordMismatch are distinct
// values that both wrap apperror.ErrInvalidCredentials.
var (
	ErrUnknownUser      = fmt.Errorf("unknown user: %w", apperror.ErrInvalidCredentials)
	ErrPasswordMismatch = fmt.Errorf("password mismatch: %w", apperror.ErrInvalidCredentials)
	ErrBackend          = fmt.Errorf("credential backend: %w", apperror.ErrAuthBackend)
)

// Players is the subset of the player service used for authentication.
type Players interface {
	FindByEmail(ctx context.Context, email string) (*playerModel.Player, error)
	Create(ctx context.Context, req *playerModel.CreatePlayerRequest) (*playerModel.Player, error)
}

// Verifier checks a password against its stored form.
type Verifier interface {
	Verify(stored, password string) bool
}

// Service defines authentication operations.
type Service interface {
	// Authenticate checks email and password and returns the player.
	Authenticate(ctx context.Context, email, password string) (*playerModel.Player, error)

	// Login authenticates and opens a session.
	Login(ctx context.Context, email, password string) (*session.Session, error)

	// Register creates a player with a password and opens a session.
	Register(ctx context.Context, req *playerModel.CreatePlayerRequest) (*session.Session, error)

	// Logout closes the session identified by token.
	Logout(ctx context.Context, token string) error

	// Session resolves a session token.
	Session(ctx context.Context, token string) (*session.Session, error)
}

type service struct {
	players  Players
	verifier Verifier
	store    session.Store
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.SugaredLogger
}

// New creates a new auth service instance.
func New(players Players, verifier Verifier, store session.Store, ttl time.Duration, logger *zap.SugaredLogger) Service {
	return &service{
		players:  players,
		verifier: verifier,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Authenticate checks email and password. Unknown emails and wrong
// passwords both satisfy errors.Is(err, apperror.ErrInvalidCredentials).
func (s *service) Authenticate(ctx context.Context, email, password string) (*playerModel.Player, error) {
	player, err := s.players.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Infow("login failed", "reason", "unknown user")
			return nil, ErrUnknownUser
		}
		s.logger.Errorw("login lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	if !s.verifier.Verify(player.PasswordHash, password) {
		s.logger.Infow("login failed", "reason", "password mismatch", "player_id", player.ID)
		return nil, ErrPasswordMismatch
	}

	return player, nil
}

// Login authenticates and opens a session.
func (s *service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	player, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, player)
}

// Register creates a player with a password and opens a session.
func (s *service) Register(ctx context.Context, req *playerModel.CreatePlayerRequest) (*session.Session, error) {
	if req.Password == "" {
		return nil, apperror.Invalid("password is required")
	}
	player, err := s.players.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, player)
}

// Logout closes the session identified by token.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		s.logger.Errorw("session delete failed", "error", err)
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return nil
}

// Session resolves a session token.
func (s *service) Session(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, session.ErrSessionNotFound
	}
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
		s.logger.Errorw("session lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	return sess, nil
}

func (s *service) open(ctx context.Context, player *playerModel.Player) (*session.Session, error) {
	sess, err := session.New(player.ID, player.TagName, s.ttl, s.now())
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to create session", err)
	}
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Errorw("session save failed", "player_id", player.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	s.logger.Infow("session opened", "player_id", player.ID)
	return sess, nil
}
