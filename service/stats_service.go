package service

import (
	"context"
	"fmt"

	"parlay/models"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// GetLeaderboard returns ranked USER-role entries. Ordering lives in the
// query; this is purely a read projection over already-recomputed
// aggregates, with rank and win rate derived for presentation.
func (s *statsService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.UserRepository().GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	for i, entry := range entries {
		entry.Rank = i + 1
		entry.WinRate = entry.ComputeWinRate()
	}

	return entries, nil
}
