// Package repository provides data access layer for event module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/as_manager/internal/apperror"
	eventModel "github.com/festy23/as_manager/internal/event/model"
	playerModel "github.com/festy23/as_manager/internal/player/model"
)

// Repository defines the interface for event data access operations.
type Repository interface {
	// GetByID finds an event by id.
	GetByID(ctx context.Context, id int64) (*eventModel.Event, error)

	// List returns all events ordered by start time.
	List(ctx context.Context) ([]eventModel.Event, error)

	// Create inserts a new event.
	Create(ctx context.Context, event *eventModel.Event) error

	// Update writes the editable columns of an event.
	Update(ctx context.Context, event *eventModel.Event) error

	// Members returns the players taking part in an event.
	Members(ctx context.Context, eventID int64) ([]playerModel.Player, error)

	// AddMember records participation. Adding twice is a no-op.
	AddMember(ctx context.Context, eventID, playerID int64) error

	// RemoveMember deletes participation and reports whether a row was removed.
	RemoveMember(ctx context.Context, eventID, playerID int64) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new event repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds an event by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*eventModel.Event, error) {
	var event eventModel.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventModel.ErrEventNotFound
		}
		r.logger.Errorw("GetByID database error", "event_id", id, "error", err)
		return nil, apperror.Storage("get event", err)
	}
	return &event, nil
}

// List returns all events ordered by start time.
func (r *repository) List(ctx context.Context) ([]eventModel.Event, error) {
	events := []eventModel.Event{}
	if err := r.db.WithContext(ctx).Order("start_time ASC, id ASC").Find(&events).Error; err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, apperror.Storage("list events", err)
	}
	return events, nil
}

// Create inserts a new event.
func (r *repository) Create(ctx context.Context, event *eventModel.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.logger.Errorw("Create database error", "name", event.Name, "error", err)
		return apperror.Storage("create event", err)
	}
	return nil
}

// Update writes name, description and times of an event.
func (r *repository) Update(ctx context.Context, event *eventModel.Event) error {
	result := r.db.WithContext(ctx).
		Model(&eventModel.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"name":        event.Name,
			"description": event.Description,
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
		})
	if result.Error != nil {
		r.logger.Errorw("Update database error", "event_id", event.ID, "error", result.Error)
		return apperror.Storage("update event", result.Error)
	}
	if result.RowsAffected == 0 {
		return eventModel.ErrEventNotFound
	}
	return nil
}

// Members returns the players taking part in an event, ordered by tag name.
func (r *repository) Members(ctx context.Context, eventID int64) ([]playerModel.Player, error) {
	players := []playerModel.Player{}
	err := r.db.WithContext(ctx).
		Joins("JOIN event_members em ON em.player_id = players.id").
		Where("em.event_id = ?", eventID).
		Order("players.tag_name ASC, players.id ASC").
		Find(&players).Error
	if err != nil {
		r.logger.Errorw("Members database error", "event_id", eventID, "error", err)
		return nil, apperror.Storage("list event members", err)
	}
	return players, nil
}

// AddMember records participation.
func (r *repository) AddMember(ctx context.Context, eventID, playerID int64) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&eventModel.EventMember{EventID: eventID, PlayerID: playerID}).Error
	if err != nil {
		r.logger.Errorw("AddMember database error", "event_id", eventID, "player_id", playerID, "error", err)
		return apperror.Storage("join event", err)
	}
	return nil
}

// RemoveMember deletes participation.
func (r *repository) RemoveMember(ctx context.Context, eventID, playerID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND player_id = ?", eventID, playerID).
		Delete(&eventModel.EventMember{})
	if result.Error != nil {
		r.logger.Errorw("RemoveMember database error", "event_id", eventID, "player_id", playerID, "error", result.Error)
		return false, apperror.Storage("leave event", result.Error)
	}
	return result.RowsAffected > 0, nil
}
