// Package repository provides data access layer for player module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/search"
)

// Repository defines the interface for player data access operations.
type Repository interface {
	// GetByID finds a player by id.
	GetByID(ctx context.Context, id int64) (*model.Player, error)

	// FindByEmail finds a player by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.Player, error)

	// List returns all players ordered by tag name.
	List(ctx context.Context) ([]model.Player, error)

	// Filter returns players whose tag name or email contains term.
	Filter(ctx context.Context, term string, limit int) ([]model.Player, error)

	// ListByTeam returns the members of a team.
	ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error)

	// ListWithoutTeam returns players that belong to no team.
	ListWithoutTeam(ctx context.Context) ([]model.Player, error)

	// EmailExists reports whether another player (not excludeID) uses email.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// TagNameExists reports whether another player (not excludeID) uses tag.
	TagNameExists(ctx context.Context, tag string, excludeID int64) (bool, error)

	// TeamExists reports whether a team with the given id exists.
	TeamExists(ctx context.Context, teamID int64) (bool, error)

	// Create inserts a new player.
	Create(ctx context.Context, player *model.Player) error

	// Update writes every editable column of an existing player.
	Update(ctx context.Context, player *model.Player) error

	// SetPasswordHash replaces a player's password digest.
	SetPasswordHash(ctx context.Context, id int64, hash string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new player repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds a player by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*model.Player, error) {
	r.logger.Debugw("GetByID called", "player_id", id)

	var player model.Player
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		r.logger.Errorw("GetByID database error", "player_id", id, "error", err)
		return nil, apperror.Storage("get player", err)
	}

	return &player, nil
}

// FindByEmail finds a player by email, case-insensitively.
func (r *repository) FindByEmail(ctx context.Context, email string) (*model.Player, error) {
	r.logger.Debugw("FindByEmail called")

	var player model.Player
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", search.Normalize(email)).
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		r.logger.Errorw("FindByEmail database error", "error", err)
		return nil, apperror.Storage("find player by email", err)
	}

	return &player, nil
}

// List returns all players ordered by tag name.
func (r *repository) List(ctx context.Context) ([]model.Player, error) {
	return r.find(ctx, "List", r.db.WithContext(ctx))
}

// Filter returns players whose tag name or email contains term.
func (r *repository) Filter(ctx context.Context, term string, limit int) ([]model.Player, error) {
	pattern := search.LikePattern(term)
	query := r.db.WithContext(ctx).
		Where(`LOWER(tag_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`, pattern, pattern).
		Limit(search.Limit(limit))
	return r.find(ctx, "Filter", query)
}

// ListByTeam returns the members of a team.
func (r *repository) ListByTeam(ctx context.Context, teamID int64) ([]model.Player, error) {
	return r.find(ctx, "ListByTeam", r.db.WithContext(ctx).Where("team_id = ?", teamID))
}

// ListWithoutTeam returns players that belong to no team.
func (r *repository) ListWithoutTeam(ctx context.Context) ([]model.Player, error) {
	return r.find(ctx, "ListWithoutTeam", r.db.WithContext(ctx).Where("team_id IS NULL"))
}

func (r *repository) find(ctx context.Context, op string, query *gorm.DB) ([]model.Player, error) {
	var players []model.Player
	if err := query.Order("tag_name ASC, id ASC").Find(&players).Error; err != nil {
		r.logger.Errorw(op+" database error", "error", err)
		return nil, apperror.Storage("list players", err)
	}
	if players == nil {
		players = []model.Player{}
	}
	r.logger.Debugw(op+" completed", "count", len(players))
	return players, nil
}

// EmailExists reports whether another player uses email.
func (r *repository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "LOWER(email) = ?", search.Normalize(email), excludeID)
}

// TagNameExists reports whether another player uses tag.
func (r *repository) TagNameExists(ctx context.Context, tag string, excludeID int64) (bool, error) {
	return r.exists(ctx, "LOWER(tag_name) = ?", search.Normalize(tag), excludeID)
}

func (r *repository) exists(ctx context.Context, cond string, value string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Player{}).Where(cond, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("uniqueness check failed", "error", err)
		return false, apperror.Storage("check player uniqueness", err)
	}
	return count > 0, nil
}

// TeamExists reports whether a team with the given id exists.
func (r *repository) TeamExists(ctx context.Context, teamID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("teams").Where("id = ?", teamID).Count(&count).Error
	if err != nil {
		r.logger.Errorw("TeamExists database error", "team_id", teamID, "error", err)
		return false, apperror.Storage("check team", err)
	}
	return count > 0, nil
}

// Create inserts a new player.
func (r *repository) Create(ctx context.Context, player *model.Player) error {
	r.logger.Debugw("Create called", "tag_name", player.TagName)

	if err := r.db.WithContext(ctx).Create(player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateError(ctx, player)
		}
		r.logger.Errorw("Create database error", "tag_name", player.TagName, "error", err)
		return apperror.Storage("create player", err)
	}

	r.logger.Infow("player created", "player_id", player.ID, "tag_name", player.TagName)
	return nil
}

// Update writes every editable column of an existing player.
// A team change clears the player's contact role on the old team and
// detaches the player from platoons in the same transaction.
func (r *repository) Update(ctx context.Context, player *model.Player) error {
	r.logger.Debugw("Update called", "player_id", player.ID)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Player
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "team_id").
			First(&current, player.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrPlayerNotFound
		}
		if err != nil {
			return apperror.Storage("get player", err)
		}

		err = tx.Model(&model.Player{}).
			Where("id = ?", player.ID).
			Updates(map[string]interface{}{
				"email":    player.Email,
				"tag_name": player.TagName,
				"active":   player.Active,
				"team_id":  player.TeamID,
			}).Error
		if err != nil {
			return err
		}

		if sameTeam(current.TeamID, player.TeamID) {
			return nil
		}
		return r.moveTeam(tx, player.ID, current.TeamID, player.TeamID)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.duplicateError(ctx, player)
	}
	if apperror.CodeOf(err) != apperror.CodeInternal {
		return err
	}
	r.logger.Errorw("Update database error", "player_id", player.ID, "error", err)
	return apperror.Storage("update player", err)
}

func (r *repository) moveTeam(tx *gorm.DB, playerID int64, from, to *int64) error {
	if from != nil {
		err := tx.Exec("UPDATE teams SET contact_person_id = NULL WHERE id = ? AND contact_person_id = ?", *from, playerID).Error
		if err != nil {
			r.logger.Errorw("clear contact failed", "player_id", playerID, "team_id", *from, "error", err)
			return apperror.Storage("clear team contact", err)
		}
	}
	if to != nil {
		err := tx.Exec("DELETE FROM platoon_player_without_team WHERE player_id = ?", playerID).Error
		if err != nil {
			r.logger.Errorw("detach from platoons failed", "player_id", playerID, "error", err)
			return apperror.Storage("detach player from platoons", err)
		}
	}
	r.logger.Debugw("team changed", "player_id", playerID, "from", from, "to", to)
	return nil
}

func sameTeam(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SetPasswordHash replaces a player's password digest.
func (r *repository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Player{}).
		Where("id = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		r.logger.Errorw("SetPasswordHash database error", "player_id", id, "error", result.Error)
		return apperror.Storage("set password", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// duplicateError resolves which unique column a constraint violation hit.
// It covers the race between the service's pre-check and the write.
func (r *repository) duplicateError(ctx context.Context, player *model.Player) error {
	r.logger.Warnw("unique constraint violated", "player_id", player.ID, "tag_name", player.TagName)

	if taken, err := r.EmailExists(ctx, player.Email, player.ID); err == nil && taken {
		return model.EmailExists(player.Email)
	}
	if taken, err := r.TagNameExists(ctx, player.TagName, player.ID); err == nil && taken {
		return model.TagNameExists(player.TagName)
	}
	return apperror.Wrap(apperror.CodeAlreadyExists, "player already exists", gorm.ErrDuplicatedKey)
}
