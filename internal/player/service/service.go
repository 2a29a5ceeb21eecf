// Package service provides business logic layer for player module.
package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/player/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PasswordHasher produces stored password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service defines the interface for player business logic operations.
type Service interface {
	// Create registers a new player after checking email and tag name uniqueness.
	Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error)

	// Get returns a player by id.
	Get(ctx context.Context, id int64) (*model.Player, error)

	// FindByEmail returns a player by email.
	FindByEmail(ctx context.Context, email string) (*model.Player, error)

	// List returns all players.
	List(ctx context.Context) ([]model.Player, error)

	// Filter returns players matching term.
	Filter(ctx context.Context, term string, limit int) ([]model.Player, error)

	// ListByTeam returns the members of a team.
	ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error)

	// ListWithoutTeam returns players without a team.
	ListWithoutTeam(ctx context.Context) ([]model.Player, error)

	// Update replaces a player's editable fields.
	Update(ctx context.Context, id int64, req *model.UpdatePlayerRequest) (*model.Player, error)

	// SetPassword sets a new password for a player.
	SetPassword(ctx context.Context, id int64, password string) error
}

type service struct {
	repo   repository.Repository
	hasher PasswordHasher
	logger *zap.SugaredLogger
}

// New creates a new player service instance.
func New(repo repository.Repository, hasher PasswordHasher, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, hasher: hasher, logger: logger}
}

// Create registers a new player. The email is checked before the tag name,
// and no row is written when either is taken.
func (s *service) Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	email, tag, err := validateIdentity(req.Email, req.TagName)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, email, tag, 0); err != nil {
		return nil, err
	}

	player := &model.Player{
		Email:   email,
		TagName: tag,
		Active:  true,
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			s.logger.Errorw("password hashing failed", "error", err)
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to hash password", err)
		}
		player.PasswordHash = hash
	}

	if err := s.repo.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Infow("Create completed", "player_id", player.ID, "tag_name", player.TagName)
	return player, nil
}

// Get returns a player by id.
func (s *service) Get(ctx context.Context, id int64) (*model.Player, error) {
	if id <= 0 {
		return nil, model.ErrPlayerNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// FindByEmail returns a player by email.
func (s *service) FindByEmail(ctx context.Context, email string) (*model.Player, error) {
	if strings.TrimSpace(email) == "" {
		return nil, model.ErrPlayerNotFound
	}
	return s.repo.FindByEmail(ctx, email)
}

// List returns all players.
func (s *service) List(ctx context.Context) ([]model.Player, error) {
	return s.repo.List(ctx)
}

// Filter returns players matching term. An empty term lists everyone.
func (s *service) Filter(ctx context.Context, term string, limit int) ([]model.Player, error) {
	if strings.TrimSpace(term) == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Filter(ctx, term, limit)
}

// ListByTeam returns the members of a team.
func (s *service) ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

// ListWithoutTeam returns players without a team.
func (s *service) ListWithoutTeam(ctx context.Context) ([]model.Player, error) {
	return s.repo.ListWithoutTeam(ctx)
}

// Update replaces a player's editable fields.
func (s *service) Update(ctx context.Context, id int64, req *model.UpdatePlayerRequest) (*model.Player, error) {
	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	email, tag, err := validateIdentity(req.Email, req.TagName)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, email, tag, id); err != nil {
		return nil, err
	}

	if req.TeamID != nil {
		exists, err := s.repo.TeamExists(ctx, *req.TeamID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrTeamNotFound
		}
	}

	player.Email = email
	player.TagName = tag
	player.Active = req.Active
	player.TeamID = req.TeamID

	if err := s.repo.Update(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Infow("Update completed", "player_id", id, "active", player.Active, "team_id", player.TeamID)
	return s.repo.GetByID(ctx, id)
}

// SetPassword sets a new password for a player.
func (s *service) SetPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return apperror.Invalid("password is required")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "failed to hash password", err)
	}
	if err := s.repo.SetPasswordHash(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Infow("SetPassword completed", "player_id", id)
	return nil
}

func (s *service) checkUnique(ctx context.Context, email, tag string, excludeID int64) error {
	taken, err := s.repo.EmailExists(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		s.logger.Debugw("email already registered", "player_id", excludeID)
		return model.EmailExists(email)
	}

	taken, err = s.repo.TagNameExists(ctx, tag, excludeID)
	if err != nil {
		return err
	}
	if taken {
		s.logger.Debugw("tag name already registered", "tag_name", tag)
		return model.TagNameExists(tag)
	}
	return nil
}

// validateIdentity trims and checks email and tag name.
func validateIdentity(email, tag string) (string, string, error) {
	email = strings.TrimSpace(email)
	tag = strings.TrimSpace(tag)

	if err := validate.Var(email, "required,email,max=255"); err != nil {
		return "", "", model.ErrInvalidEmail
	}
	if err := validate.Var(tag, "required,max=255"); err != nil {
		return "", "", model.ErrInvalidTagName
	}
	return email, tag, nil
}
