// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/as_manager/internal/statistics/model"
	"github.com/festy23/as_manager/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetSummary returns the roster overview.
	GetSummary(ctx context.Context) (*model.Summary, error)
}

type service struct {
	repo   repository.Repository
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// GetSummary returns the roster overview.
func (s *service) GetSummary(ctx context.Context) (*model.Summary, error) {
	s.logger.Debugw("GetSummary called")

	counts, err := s.repo.GetCounts(ctx, s.now())
	if err != nil {
		s.logger.Errorw("GetSummary failed", "error", err)
		return nil, err
	}

	sizes, err := s.repo.GetTeamSizes(ctx)
	if err != nil {
		s.logger.Errorw("GetSummary failed", "error", err)
		return nil, err
	}

	if sizes == nil {
		sizes = []model.TeamSize{}
	}

	return &model.Summary{Counts: *counts, TeamSizes: sizes}, nil
}
