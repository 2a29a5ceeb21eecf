// Package repository provides data access layer for platoon module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/as_manager/internal/apperror"
	platoonModel "github.com/festy23/as_manager/internal/platoon/model"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/search"
)

// Repository defines the interface for platoon data access operations.
type Repository interface {
	// GetByID finds a platoon by id.
	GetByID(ctx context.Context, id int64) (*platoonModel.Platoon, error)

	// List returns all platoons ordered by name.
	List(ctx context.Context) ([]platoonModel.Platoon, error)

	// Filter returns platoons whose name or team label contains term.
	Filter(ctx context.Context, term string, limit int) ([]platoonModel.Platoon, error)

	// Create inserts a new platoon.
	Create(ctx context.Context, platoon *platoonModel.Platoon) error

	// Update writes every editable column of a platoon.
	Update(ctx context.Context, platoon *platoonModel.Platoon) error

	// Players returns the players attached to the platoon without a team.
	Players(ctx context.Context, platoonID int64) ([]playerModel.Player, error)

	// AddPlayer attaches a player. Attaching twice is a no-op.
	AddPlayer(ctx context.Context, platoonID, playerID int64) error

	// RemovePlayer detaches a player. It reports whether a row was removed.
	RemovePlayer(ctx context.Context, platoonID, playerID int64) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new platoon repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds a platoon by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*platoonModel.Platoon, error) {
	var platoon platoonModel.Platoon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&platoon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platoonModel.ErrPlatoonNotFound
		}
		r.logger.Errorw("GetByID database error", "platoon_id", id, "error", err)
		return nil, apperror.Storage("get platoon", err)
	}
	return &platoon, nil
}

// List returns all platoons ordered by name.
func (r *repository) List(ctx context.Context) ([]platoonModel.Platoon, error) {
	return r.find(r.db.WithContext(ctx))
}

// Filter returns platoons whose name or team label contains term.
func (r *repository) Filter(ctx context.Context, term string, limit int) ([]platoonModel.Platoon, error) {
	pattern := search.LikePattern(term)
	query := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(team) LIKE ? ESCAPE '\'`, pattern, pattern).
		Limit(search.Limit(limit))
	return r.find(query)
}

func (r *repository) find(query *gorm.DB) ([]platoonModel.Platoon, error) {
	platoons := []platoonModel.Platoon{}
	if err := query.Order("name ASC, id ASC").Find(&platoons).Error; err != nil {
		r.logger.Errorw("list platoons database error", "error", err)
		return nil, apperror.Storage("list platoons", err)
	}
	return platoons, nil
}

// Create inserts a new platoon.
func (r *repository) Create(ctx context.Context, platoon *platoonModel.Platoon) error {
	if err := r.db.WithContext(ctx).Create(platoon).Error; err != nil {
		r.logger.Errorw("Create database error", "name", platoon.Name, "error", err)
		return apperror.Storage("create platoon", err)
	}
	r.logger.Infow("platoon created", "platoon_id", platoon.ID)
	return nil
}

// Update writes every editable column of a platoon.
func (r *repository) Update(ctx context.Context, platoon *platoonModel.Platoon) error {
	result := r.db.WithContext(ctx).
		Model(&platoonModel.Platoon{}).
		Where("id = ?", platoon.ID).
		Updates(map[string]interface{}{
			"team":             platoon.Team,
			"name":             platoon.Name,
			"motto":            platoon.Motto,
			"leader_id":        platoon.LeaderID,
			"deputy_leader_id": platoon.DeputyLeaderID,
		})
	if result.Error != nil {
		r.logger.Errorw("Update database error", "platoon_id", platoon.ID, "error", result.Error)
		return apperror.Storage("update platoon", result.Error)
	}
	if result.RowsAffected == 0 {
		return platoonModel.ErrPlatoonNotFound
	}
	return nil
}

// Players returns the players attached to the platoon without a team.
func (r *repository) Players(ctx context.Context, platoonID int64) ([]playerModel.Player, error) {
	players := []playerModel.Player{}
	err := r.db.WithContext(ctx).
		Joins("JOIN platoon_player_without_team pp ON pp.player_id = players.id").
		Where("pp.platoon_id = ?", platoonID).
		Order("players.tag_name ASC, players.id ASC").
		Find(&players).Error
	if err != nil {
		r.logger.Errorw("Players database error", "platoon_id", platoonID, "error", err)
		return nil, apperror.Storage("list platoon players", err)
	}
	return players, nil
}

// AddPlayer attaches a player to the platoon.
func (r *repository) AddPlayer(ctx context.Context, platoonID, playerID int64) error {
	link := &platoonModel.PlatoonPlayer{PlatoonID: platoonID, PlayerID: playerID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
	if err != nil {
		r.logger.Errorw("AddPlayer database error", "platoon_id", platoonID, "player_id", playerID, "error", err)
		return apperror.Storage("attach player", err)
	}
	return nil
}

// RemovePlayer detaches a player from the platoon.
func (r *repository) RemovePlayer(ctx context.Context, platoonID, playerID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("platoon_id = ? AND player_id = ?", platoonID, playerID).
		Delete(&platoonModel.PlatoonPlayer{})
	if result.Error != nil {
		r.logger.Errorw("RemovePlayer database error", "platoon_id", platoonID, "player_id", playerID, "error", result.Error)
		return false, apperror.Storage("detach player", result.Error)
	}
	return result.RowsAffected > 0, nil
}
