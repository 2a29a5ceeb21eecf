// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/as_manager/internal/apperror"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/search"
	teamModel "github.com/festy23/as_manager/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// GetByID finds a team by id.
	GetByID(ctx context.Context, id int64) (*teamModel.Team, error)

	// GetForUpdate finds a team by id and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*teamModel.Team, error)

	// List returns all teams ordered by name.
	List(ctx context.Context) ([]teamModel.Team, error)

	// Filter returns teams whose name contains term.
	Filter(ctx context.Context, term string, limit int) ([]teamModel.Team, error)

	// ListByPlatoon returns the teams of a platoon.
	ListByPlatoon(ctx context.Context, platoonID int64) ([]teamModel.Team, error)

	// Create inserts a new team.
	Create(ctx context.Context, team *teamModel.Team) error

	// Update writes the scalar fields of a team.
	Update(ctx context.Context, team *teamModel.Team) error

	// MemberIDs returns the ids of the team's players.
	MemberIDs(ctx context.Context, teamID int64) ([]int64, error)

	// Members returns the team's players ordered by tag name.
	Members(ctx context.Context, teamID int64) ([]playerModel.Player, error)

	// ExistingPlayerIDs returns the subset of ids that belong to existing players.
	ExistingPlayerIDs(ctx context.Context, ids []int64) ([]int64, error)

	// PlayerExists reports whether a player exists.
	PlayerExists(ctx context.Context, id int64) (bool, error)

	// PlatoonExists reports whether a platoon exists.
	PlatoonExists(ctx context.Context, id int64) (bool, error)

	// AssignPlayers sets team_id of the given players to teamID and detaches
	// them from any platoon they were attached to without a team.
	AssignPlayers(ctx context.Context, teamID int64, ids []int64) (int64, error)

	// ReleasePlayers clears team_id of those given players that are in teamID.
	ReleasePlayers(ctx context.Context, teamID int64, ids []int64) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*teamModel.Team, error) {
	return r.get(ctx, "GetByID", r.db.WithContext(ctx), id)
}

// GetForUpdate finds a team by id with SELECT ... FOR UPDATE.
func (r *repository) GetForUpdate(ctx context.Context, id int64) (*teamModel.Team, error) {
	return r.get(ctx, "GetForUpdate", r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *repository) get(_ context.Context, op string, query *gorm.DB, id int64) (*teamModel.Team, error) {
	r.logger.Debugw(op+" called", "team_id", id)

	var team teamModel.Team
	if err := query.Where("id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw(op+" database error", "team_id", id, "error", err)
		return nil, apperror.Storage("get team", err)
	}
	return &team, nil
}

// List returns all teams ordered by name.
func (r *repository) List(ctx context.Context) ([]teamModel.Team, error) {
	return r.find("List", r.db.WithContext(ctx))
}

// Filter returns teams whose name contains term, case-insensitively.
func (r *repository) Filter(ctx context.Context, term string, limit int) ([]teamModel.Team, error) {
	query := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, search.LikePattern(term)).
		Limit(search.Limit(limit))
	return r.find("Filter", query)
}

// ListByPlatoon returns the teams of a platoon.
func (r *repository) ListByPlatoon(ctx context.Context, platoonID int64) ([]teamModel.Team, error) {
	return r.find("ListByPlatoon", r.db.WithContext(ctx).Where("platoon_id = ?", platoonID))
}

func (r *repository) find(op string, query *gorm.DB) ([]teamModel.Team, error) {
	teams := []teamModel.Team{}
	if err := query.Order("name ASC, id ASC").Find(&teams).Error; err != nil {
		r.logger.Errorw(op+" database error", "error", err)
		return nil, apperror.Storage("list teams", err)
	}
	r.logger.Debugw(op+" completed", "count", len(teams))
	return teams, nil
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	r.logger.Debugw("Create called", "name", team.Name)

	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		r.logger.Errorw("Create database error", "name", team.Name, "error", err)
		return apperror.Storage("create team", err)
	}
	return nil
}

// Update writes name, contact person and platoon of a team.
func (r *repository) Update(ctx context.Context, team *teamModel.Team) error {
	r.logger.Debugw("Update called", "team_id", team.ID)

	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":              team.Name,
			"contact_person_id": team.ContactPersonID,
			"platoon_id":        team.PlatoonID,
		})
	if result.Error != nil {
		r.logger.Errorw("Update database error", "team_id", team.ID, "error", result.Error)
		return apperror.Storage("update team", result.Error)
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// MemberIDs returns the ids of the team's players in ascending order.
func (r *repository) MemberIDs(ctx context.Context, teamID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&playerModel.Player{}).
		Where("team_id = ?", teamID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("MemberIDs database error", "team_id", teamID, "error", err)
		return nil, apperror.Storage("list team members", err)
	}
	return ids, nil
}

// Members returns the team's players ordered by tag name.
func (r *repository) Members(ctx context.Context, teamID int64) ([]playerModel.Player, error) {
	players := []playerModel.Player{}
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("tag_name ASC, id ASC").
		Find(&players).Error
	if err != nil {
		r.logger.Errorw("Members database error", "team_id", teamID, "error", err)
		return nil, apperror.Storage("list team members", err)
	}
	return players, nil
}

// ExistingPlayerIDs returns the subset of ids that belong to existing players.
func (r *repository) ExistingPlayerIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := []int64{}
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).
		Model(&playerModel.Player{}).
		Where("id IN ?", ids).
		Order("id ASC").
		Pluck("id", &found).Error
	if err != nil {
		r.logger.Errorw("ExistingPlayerIDs database error", "error", err)
		return nil, apperror.Storage("check players", err)
	}
	return found, nil
}

// PlayerExists reports whether a player exists.
func (r *repository) PlayerExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "players", id)
}

// PlatoonExists reports whether a platoon exists.
func (r *repository) PlatoonExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "platoons", id)
}

func (r *repository) exists(ctx context.Context, table string, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		r.logger.Errorw("existence check failed", "table", table, "id", id, "error", err)
		return false, apperror.Storage("check "+table, err)
	}
	return count > 0, nil
}

// AssignPlayers sets team_id of the given players in one statement.
func (r *repository) AssignPlayers(ctx context.Context, teamID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&playerModel.Player{}).
		Where("id IN ?", ids).
		Update("team_id", teamID)
	if result.Error != nil {
		r.logger.Errorw("AssignPlayers database error", "team_id", teamID, "error", result.Error)
		return 0, apperror.Storage("assign players", result.Error)
	}

	err := r.db.WithContext(ctx).
		Exec("DELETE FROM platoon_player_without_team WHERE player_id IN ?", ids).Error
	if err != nil {
		r.logger.Errorw("detach from platoons failed", "team_id", teamID, "error", err)
		return 0, apperror.Storage("detach players from platoons", err)
	}

	r.logger.Debugw("AssignPlayers completed", "team_id", teamID, "rows", result.RowsAffected)
	return result.RowsAffected, nil
}

// ReleasePlayers clears team_id of the given players still in teamID.
func (r *repository) ReleasePlayers(ctx context.Context, teamID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&playerModel.Player{}).
		Where("id IN ? AND team_id = ?", ids, teamID).
		Update("team_id", nil)
	if result.Error != nil {
		r.logger.Errorw("ReleasePlayers database error", "team_id", teamID, "error", result.Error)
		return 0, apperror.Storage("release players", result.Error)
	}
	r.logger.Debugw("ReleasePlayers completed", "team_id", teamID, "rows", result.RowsAffected)
	return result.RowsAffected, nil
}
