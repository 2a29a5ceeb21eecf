// Package service provides business logic layer for event module.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/apperror"
	eventModel "github.com/festy23/as_manager/internal/event/model"
	"github.com/festy23/as_manager/internal/event/repository"
	playerModel "github.com/festy23/as_manager/internal/player/model"
)

const maxNameLength = 255

// Players looks up players by id.
type Players interface {
	Get(ctx context.Context, id int64) (*playerModel.Player, error)
}

// Service defines the interface for event business logic operations.
type Service interface {
	// Create inserts an event created by creatorID.
	Create(ctx context.Context, creatorID int64, req *eventModel.SaveEventRequest) (*eventModel.Event, error)
	Get(ctx context.Context, id int64) (*eventModel.Event, error)
	Details(ctx context.Context, id int64) (*eventModel.Details, error)
	List(ctx context.Context) ([]eventModel.Event, error)
	Update(ctx context.Context, id int64, req *eventModel.SaveEventRequest) (*eventModel.Event, error)
	// Join adds the player to the event.
	Join(ctx context.Context, eventID, playerID int64) error
	// Leave removes the player from the event.
	Leave(ctx context.Context, eventID, playerID int64) error
}

type service struct {
	repo    repository.Repository
	players Players
	logger  *zap.SugaredLogger
}

// New creates a new event service instance.
func New(repo repository.Repository, players Players, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, players: players, logger: logger}
}

// Create inserts an event. The creator must be an existing player.
func (s *service) Create(ctx context.Context, creatorID int64, req *eventModel.SaveEventRequest) (*eventModel.Event, error) {
	event, err := build(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.players.Get(ctx, creatorID); err != nil {
		return nil, err
	}
	event.CreatorID = &creatorID

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Infow("Create completed", "event_id", event.ID, "creator", creatorID)
	return event, nil
}

// Get returns an event by id.
func (s *service) Get(ctx context.Context, id int64) (*eventModel.Event, error) {
	if id <= 0 {
		return nil, eventModel.ErrEventNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Details returns an event with its creator and members.
func (s *service) Details(ctx context.Context, id int64) (*eventModel.Details, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details := &eventModel.Details{Event: *event}

	if event.CreatorID != nil {
		creator, err := s.players.Get(ctx, *event.CreatorID)
		switch {
		case err == nil:
			details.Creator = creator
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, err
		}
	}

	if details.Members, err = s.repo.Members(ctx, id); err != nil {
		return nil, err
	}
	return details, nil
}

// List returns all events ordered by start time.
func (s *service) List(ctx context.Context) ([]eventModel.Event, error) {
	return s.repo.List(ctx)
}

// Update replaces the editable fields of an event. The creator is kept.
func (s *service) Update(ctx context.Context, id int64, req *eventModel.SaveEventRequest) (*eventModel.Event, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	event, err := build(req)
	if err != nil {
		return nil, err
	}
	event.ID = id
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Infow("Update completed", "event_id", id)
	return s.repo.GetByID(ctx, id)
}

// Join adds the player to the event. Joining twice is a no-op.
func (s *service) Join(ctx context.Context, eventID, playerID int64) error {
	if _, err := s.Get(ctx, eventID); err != nil {
		return err
	}
	if _, err := s.players.Get(ctx, playerID); err != nil {
		return err
	}
	if err := s.repo.AddMember(ctx, eventID, playerID); err != nil {
		return err
	}
	s.logger.Infow("Join completed", "event_id", eventID, "player_id", playerID)
	return nil
}

// Leave removes the player from the event. Leaving an event not joined is a no-op.
func (s *service) Leave(ctx context.Context, eventID, playerID int64) error {
	if _, err := s.Get(ctx, eventID); err != nil {
		return err
	}
	removed, err := s.repo.RemoveMember(ctx, eventID, playerID)
	if err != nil {
		return err
	}
	s.logger.Infow("Leave completed", "event_id", eventID, "player_id", playerID, "removed", removed)
	return nil
}

func build(req *eventModel.SaveEventRequest) (*eventModel.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, eventModel.ErrInvalidName
	}
	if req.StartTime.IsZero() {
		return nil, eventModel.ErrMissingStart
	}
	start := req.StartTime.UTC()
	var end *time.Time
	if req.EndTime != nil {
		e := req.EndTime.UTC()
		if e.Before(start) {
			return nil, eventModel.ErrEndBeforeStart
		}
		end = &e
	}
	return &eventModel.Event{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		StartTime:   start,
		EndTime:     end,
	}, nil
}
