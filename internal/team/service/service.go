// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/apperror"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/team/repository"
)

const maxNameLength = 255

// Service defines the interface for team business logic operations.
type Service interface {
	// Create inserts a team and assigns its initial members.
	Create(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.SaveResult, error)

	// Get returns a team by id.
	Get(ctx context.Context, id int64) (*teamModel.Team, error)

	// Details returns a team with its members.
	Details(ctx context.Context, id int64) (*teamModel.Details, error)

	// List returns all teams.
	List(ctx context.Context) ([]teamModel.Team, error)

	// Filter returns teams whose name contains term.
	Filter(ctx context.Context, term string, limit int) ([]teamModel.Team, error)

	// ListByPlatoon returns the teams of a platoon.
	ListByPlatoon(ctx context.Context, platoonID int64) ([]teamModel.Team, error)

	// Save updates a team and reconciles its membership in one transaction.
	Save(ctx context.Context, id int64, req *teamModel.SaveTeamRequest) (*teamModel.SaveResult, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// Create inserts a team and assigns its initial members and contact person.
func (s *service) Create(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.SaveResult, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	members, err := validateIDs(req.Members)
	if err != nil {
		return nil, err
	}

	var result *teamModel.SaveResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		if err := validateRefs(ctx, txRepo, req.ContactPersonID, req.PlatoonID); err != nil {
			return err
		}

		team := &teamModel.Team{
			Name:            name,
			ContactPersonID: req.ContactPersonID,
			PlatoonID:       req.PlatoonID,
		}
		if err := txRepo.Create(ctx, team); err != nil {
			return err
		}

		result, err = reconcile(ctx, txRepo, team, members, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Create completed", "team_id", result.Team.ID, "members", len(result.Members))
	return result, nil
}

// Save updates a team's scalar fields and applies the membership change.
// Either everything is written or nothing is.
func (s *service) Save(ctx context.Context, id int64, req *teamModel.SaveTeamRequest) (*teamModel.SaveResult, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	added, err := validateIDs(req.Added)
	if err != nil {
		return nil, err
	}
	removed, err := validateIDs(req.Removed)
	if err != nil {
		return nil, err
	}

	var result *teamModel.SaveResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		// Serializes concurrent saves of the same team.
		team, err := txRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := validateRefs(ctx, txRepo, req.ContactPersonID, req.PlatoonID); err != nil {
			return err
		}

		team.Name = name
		team.ContactPersonID = req.ContactPersonID
		team.PlatoonID = req.PlatoonID
		if err := txRepo.Update(ctx, team); err != nil {
			return err
		}

		result, err = reconcile(ctx, txRepo, team, added, removed)
		return err
	})
	if err != nil {
		s.logger.Warnw("Save failed", "team_id", id, "error", err)
		return nil, err
	}

	s.logger.Infow("Save completed",
		"team_id", id,
		"added", result.Added,
		"removed", result.Removed,
	)
	return result, nil
}

// reconcile applies the membership plan for team using a transaction-scoped repository.
func reconcile(
	ctx context.Context,
	repo repository.Repository,
	team *teamModel.Team,
	add, remove []int64,
) (*teamModel.SaveResult, error) {
	members, err := repo.MemberIDs(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	plan := Reconcile(team.ContactPersonID, members, add, remove)

	if len(plan.Add) > 0 {
		found, err := repo.ExistingPlayerIDs(ctx, plan.Add)
		if err != nil {
			return nil, err
		}
		if missing := difference(plan.Add, found); len(missing) > 0 {
			return nil, teamModel.PlayersNotFound(missing)
		}
		if _, err := repo.AssignPlayers(ctx, team.ID, plan.Add); err != nil {
			return nil, err
		}
	}

	if len(plan.Remove) > 0 {
		if _, err := repo.ReleasePlayers(ctx, team.ID, plan.Remove); err != nil {
			return nil, err
		}
	}

	current, err := repo.Members(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	updated, err := repo.GetByID(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return &teamModel.SaveResult{
		Team:    *updated,
		Added:   plan.Add,
		Removed: plan.Remove,
		Members: current,
	}, nil
}

// Get returns a team by id.
func (s *service) Get(ctx context.Context, id int64) (*teamModel.Team, error) {
	if id <= 0 {
		return nil, teamModel.ErrTeamNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Details returns a team with its members.
func (s *service) Details(ctx context.Context, id int64) (*teamModel.Details, error) {
	team, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.Members(ctx, id)
	if err != nil {
		return nil, err
	}
	return &teamModel.Details{Team: *team, Members: members}, nil
}

// List returns all teams.
func (s *service) List(ctx context.Context) ([]teamModel.Team, error) {
	return s.repo.List(ctx)
}

// Filter returns teams whose name contains term. An empty term lists all teams.
func (s *service) Filter(ctx context.Context, term string, limit int) ([]teamModel.Team, error) {
	if strings.TrimSpace(term) == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Filter(ctx, term, limit)
}

// ListByPlatoon returns the teams of a platoon.
func (s *service) ListByPlatoon(ctx context.Context, platoonID int64) ([]teamModel.Team, error) {
	return s.repo.ListByPlatoon(ctx, platoonID)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return "", teamModel.ErrInvalidTeamName
	}
	return name, nil
}

func validateIDs(ids []int64) ([]int64, error) {
	for _, id := range ids {
		if id <= 0 {
			return nil, apperror.Invalid("invalid player id %d", id)
		}
	}
	return teamModel.SortedIDs(ids), nil
}

func validateRefs(ctx context.Context, repo repository.Repository, contactID, platoonID *int64) error {
	if contactID != nil {
		ok, err := repo.PlayerExists(ctx, *contactID)
		if err != nil {
			return err
		}
		if !ok {
			return teamModel.ErrContactNotFound
		}
	}
	if platoonID != nil {
		ok, err := repo.PlatoonExists(ctx, *platoonID)
		if err != nil {
			return err
		}
		if !ok {
			return teamModel.ErrPlatoonNotFound
		}
	}
	return nil
}

// difference returns the ids in want that are not in have.
func difference(want, have []int64) []int64 {
	present := make(map[int64]bool, len(have))
	for _, id := range have {
		present[id] = true
	}
	var missing []int64
	for _, id := range want {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
