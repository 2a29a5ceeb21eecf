// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/apperror"
	"github.com/festy23/as_manager/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetCounts returns the roster totals. Events starting after now are upcoming.
	GetCounts(ctx context.Context, now time.Time) (*model.Counts, error)

	// GetTeamSizes returns the member count of every team, largest first.
	GetTeamSizes(ctx context.Context) ([]model.TeamSize, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetCounts returns the roster totals.
func (r *repository) GetCounts(ctx context.Context, now time.Time) (*model.Counts, error) {
	r.logger.Debugw("GetCounts called")

	var result struct {
		TotalPlayers       int64 `gorm:"column:total_players"`
		ActivePlayers      int64 `gorm:"column:active_players"`
		PlayersWithoutTeam int64 `gorm:"column:players_without_team"`
		Teams              int64 `gorm:"column:teams"`
		Platoons           int64 `gorm:"column:platoons"`
		UpcomingEvents     int64 `gorm:"column:upcoming_events"`
	}

	err := r.db.WithContext(ctx).
		Raw(`
			SELECT
				(SELECT COUNT(*) FROM players) AS total_players,
				(SELECT COUNT(*) FROM players WHERE active) AS active_players,
				(SELECT COUNT(*) FROM players WHERE team_id IS NULL) AS players_without_team,
				(SELECT COUNT(*) FROM teams) AS teams,
				(SELECT COUNT(*) FROM platoons) AS platoons,
				(SELECT COUNT(*) FROM events WHERE start_time > ?) AS upcoming_events
		`, now.UTC()).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetCounts database error", "error", err)
		return nil, apperror.Storage("roster counts", err)
	}

	counts := &model.Counts{
		TotalPlayers:       int(result.TotalPlayers),
		ActivePlayers:      int(result.ActivePlayers),
		PlayersWithoutTeam: int(result.PlayersWithoutTeam),
		Teams:              int(result.Teams),
		Platoons:           int(result.Platoons),
		UpcomingEvents:     int(result.UpcomingEvents),
	}

	r.logger.Debugw("GetCounts completed", "total_players", counts.TotalPlayers)
	return counts, nil
}

// GetTeamSizes returns the member count of every team, largest first.
func (r *repository) GetTeamSizes(ctx context.Context) ([]model.TeamSize, error) {
	r.logger.Debugw("GetTeamSizes called")

	var sizes []model.TeamSize

	err := r.db.WithContext(ctx).
		Table("teams").
		Select(`
			teams.id AS team_id,
			teams.name AS team_name,
			COUNT(players.id) AS members
		`).
		Joins("LEFT JOIN players ON players.team_id = teams.id").
		Group("teams.id, teams.name").
		Order("members DESC, teams.name ASC, teams.id ASC").
		Scan(&sizes).Error

	if err != nil {
		r.logger.Errorw("GetTeamSizes database error", "error", err)
		return nil, apperror.Storage("team sizes", err)
	}

	if sizes == nil {
		sizes = []model.TeamSize{}
	}

	r.logger.Debugw("GetTeamSizes completed", "count", len(sizes))
	return sizes, nil
}
