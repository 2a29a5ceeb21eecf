// Package service provides business logic layer for platoon module.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	"github.com/festy23/as_manager/internal/platoon/repository"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	teamModel "github.com/festy23/as_manager/internal/team/model"
)

const maxFieldLength = 255

// Players looks up players by id.
type Players interface {
	Get(ctx context.Context, id int64) (*playerModel.Player, error)
}

// Teams lists the teams of a platoon.
type Teams interface {
	ListByPlatoon(ctx context.Context, platoonID int64) ([]teamModel.Team, error)
}

// Service defines the interface for platoon business logic operations.
type Service interface {
	Create(ctx context.Context, req *platoonModel.SavePlatoonRequest) (*platoonModel.Platoon, error)
	Get(ctx context.Context, id int64) (*platoonModel.Platoon, error)
	Details(ctx context.Context, id int64) (*platoonModel.Details, error)
	List(ctx context.Context) ([]platoonModel.Platoon, error)
	Filter(ctx context.Context, term string, limit int) ([]platoonModel.Platoon, error)
	Update(ctx context.Context, id int64, req *platoonModel.SavePlatoonRequest) (*platoonModel.Platoon, error)
	AddPlayer(ctx context.Context, platoonID, playerID int64) error
	RemovePlayer(ctx context.Context, platoonID, playerID int64) error
}

type service struct {
	repo    repository.Repository
	players Players
	teams   Teams
	logger  *zap.SugaredLogger
}

// New creates a new platoon service instance.
func New(repo repository.Repository, players Players, teams Teams, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, players: players, teams: teams, logger: logger}
}

// Create validates and inserts a platoon.
func (s *service) Create(ctx context.Context, req *platoonModel.SavePlatoonRequest) (*platoonModel.Platoon, error) {
	platoon, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, platoon); err != nil {
		return nil, err
	}
	s.logger.Infow("Create completed", "platoon_id", platoon.ID)
	return platoon, nil
}

// Get returns a platoon by id.
func (s *service) Get(ctx context.Context, id int64) (*platoonModel.Platoon, error) {
	if id <= 0 {
		return nil, platoonModel.ErrPlatoonNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Details returns a platoon with its leadership, teams and players without team.
func (s *service) Details(ctx context.Context, id int64) (*platoonModel.Details, error) {
	platoon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &platoonModel.Details{Platoon: *platoon}
	if details.Leader, err = s.optionalPlayer(ctx, platoon.LeaderID); err != nil {
		return nil, err
	}
	if details.Deputy, err = s.optionalPlayer(ctx, platoon.DeputyLeaderID); err != nil {
		return nil, err
	}

	teams, err := s.teams.ListByPlatoon(ctx, id)
	if err != nil {
		return nil, err
	}
	details.Teams = make([]platoonModel.TeamSummary, len(teams))
	for i, team := range teams {
		details.Teams[i] = platoonModel.TeamSummary{ID: team.ID, Name: team.Name}
	}

	if details.Players, err = s.repo.Players(ctx, id); err != nil {
		return nil, err
	}
	return details, nil
}

// List returns all platoons.
func (s *service) List(ctx context.Context) ([]platoonModel.Platoon, error) {
	return s.repo.List(ctx)
}

// Filter returns platoons matching term. An empty term lists all platoons.
func (s *service) Filter(ctx context.Context, term string, limit int) ([]platoonModel.Platoon, error) {
	if strings.TrimSpace(term) == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Filter(ctx, term, limit)
}

// Update replaces the editable fields of a platoon.
func (s *service) Update(ctx context.Context, id int64, req *platoonModel.SavePlatoonRequest) (*platoonModel.Platoon, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	platoon, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	platoon.ID = id
	if err := s.repo.Update(ctx, platoon); err != nil {
		return nil, err
	}
	s.logger.Infow("Update completed", "platoon_id", id)
	return s.repo.GetByID(ctx, id)
}

// AddPlayer attaches a player without a team to the platoon.
func (s *service) AddPlayer(ctx context.Context, platoonID, playerID int64) error {
	if _, err := s.Get(ctx, platoonID); err != nil {
		return err
	}
	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return platoonModel.ErrPlayerNotFound
		}
		return err
	}
	if player.TeamID != nil {
		return platoonModel.ErrPlayerHasTeam
	}
	if err := s.repo.AddPlayer(ctx, platoonID, playerID); err != nil {
		return err
	}
	s.logger.Infow("AddPlayer completed", "platoon_id", platoonID, "player_id", playerID)
	return nil
}

// RemovePlayer detaches a player. Detaching a player that is not attached is a no-op.
func (s *service) RemovePlayer(ctx context.Context, platoonID, playerID int64) error {
	if _, err := s.Get(ctx, platoonID); err != nil {
		return err
	}
	removed, err := s.repo.RemovePlayer(ctx, platoonID, playerID)
	if err != nil {
		return err
	}
	s.logger.Infow("RemovePlayer completed", "platoon_id", platoonID, "player_id", playerID, "removed", removed)
	return nil
}

func (s *service) build(ctx context.Context, req *platoonModel.SavePlatoonRequest) (*platoonModel.Platoon, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxFieldLength {
		return nil, platoonModel.ErrInvalidName
	}
	team := strings.TrimSpace(req.Team)
	if len(team) > maxFieldLength {
		return nil, apperror.Invalid("team label must be at most %d characters", maxFieldLength)
	}

	if req.LeaderID != nil && req.DeputyLeaderID != nil && *req.LeaderID == *req.DeputyLeaderID {
		return nil, platoonModel.ErrSameLeader
	}
	if err := s.requirePlayer(ctx, req.LeaderID, platoonModel.ErrLeaderNotFound); err != nil {
		return nil, err
	}
	if err := s.requirePlayer(ctx, req.DeputyLeaderID, platoonModel.ErrDeputyNotFound); err != nil {
		return nil, err
	}

	return &platoonModel.Platoon{
		Team:           team,
		Name:           name,
		Motto:          strings.TrimSpace(req.Motto),
		LeaderID:       req.LeaderID,
		DeputyLeaderID: req.DeputyLeaderID,
	}, nil
}

func (s *service) requirePlayer(ctx context.Context, id *int64, notFound error) error {
	if id == nil {
		return nil
	}
	if _, err := s.players.Get(ctx, *id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return notFound
		}
		return err
	}
	return nil
}

func (s *service) optionalPlayer(ctx context.Context, id *int64) (*playerModel.Player, error) {
	if id == nil {
		return nil, nil
	}
	player, err := s.players.Get(ctx, *id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	return player, err
}
