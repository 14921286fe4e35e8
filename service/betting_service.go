package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parlay/events"
	"parlay/models"
	"parlay/weekclock"
)

type bettingService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// CurrentWeek returns the active placement week bucket, derived from
// wall-clock time rather than game start time.
func (s *bettingService) CurrentWeek() int {
	return weekclock.ForTime(s.now())
}

func (s *bettingService) PlaceBet(ctx context.Context, userID int64, input PlaceBetInput) (*models.Bet, error) {
	if input.OddsAmerican < models.MinOdds || input.OddsAmerican > models.MaxOdds {
		return nil, fmt.Errorf("odds must be between +%d and +%d: %w", models.MinOdds, models.MaxOdds, models.ErrValidation)
	}

	sport := strings.TrimSpace(input.Sport)
	description := strings.TrimSpace(input.Description)
	if sport == "" || description == "" {
		return nil, fmt.Errorf("sport and description are required: %w", models.ErrValidation)
	}

	weekNumber := weekclock.ForTime(s.now())

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Serialize with other placements for this (user, week) before reading
	// the week's bets, otherwise two requests can both pass the cap check.
	if err := uow.BetRepository().AcquirePlacementLock(ctx, userID, weekNumber); err != nil {
		return nil, err
	}

	existingBets, err := uow.BetRepository().GetByUserAndWeek(ctx, userID, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing bets: %w", err)
	}

	if err := CheckPlacementPolicy(existingBets, input.IsKingLock); err != nil {
		return nil, err
	}

	bet := &models.Bet{
		UserID:        userID,
		WeekNumber:    weekNumber,
		Sport:         sport,
		Description:   description,
		OddsAmerican:  input.OddsAmerican,
		OddsLocked:    input.OddsAmerican,
		IsKingLock:    input.IsKingLock,
		GameStartTime: input.GameStartTime,
	}

	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	uow.EventBus().Publish(events.BetPlacedEvent{
		BetID:      bet.ID,
		UserID:     userID,
		WeekNumber: weekNumber,
		OddsLocked: bet.OddsLocked,
		IsKingLock: bet.IsKingLock,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

func (s *bettingService) GetBetsForWeek(ctx context.Context, userID int64, weekNumber int) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetByUserAndWeek(ctx, userID, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for week %d: %w", weekNumber, err)
	}

	return bets, nil
}

func (s *bettingService) DeleteBet(ctx context.Context, betID, requesterID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, betID)
	if err != nil {
		return fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return fmt.Errorf("delete bet %d: %w", betID, models.ErrBetNotFound)
	}
	if !bet.IsOwnedBy(requesterID) {
		return fmt.Errorf("bet %d is not owned by user %d: %w", betID, requesterID, models.ErrForbidden)
	}
	if !bet.CanBeDeleted() {
		return fmt.Errorf("delete bet %d: %w", betID, models.ErrBetNotDeletable)
	}

	if err := uow.BetRepository().Delete(ctx, betID); err != nil {
		return err
	}

	uow.EventBus().Publish(events.BetDeletedEvent{
		BetID:  betID,
		UserID: requesterID,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *bettingService) ResolveBet(ctx context.Context, betID int64, status models.BetStatus) (*models.Bet, error) {
	if !models.IsValidResolution(status) {
		return nil, fmt.Errorf("invalid resolution status %q: %w", status, models.ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("resolve bet %d: %w", betID, models.ErrBetNotFound)
	}

	points := PointsForStatus(status, bet.OddsLocked, bet.IsKingLock)

	// Conditional on the bet still being PENDING, so a concurrent or
	// repeated resolution loses cleanly instead of double-counting.
	resolved, err := uow.BetRepository().Resolve(ctx, betID, status, points, s.now())
	if err != nil {
		return nil, err
	}

	history, err := uow.BetRepository().GetAllByUser(ctx, resolved.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet history: %w", err)
	}

	agg := ComputeAggregates(history)
	if err := uow.UserRepository().UpdateAggregates(ctx, resolved.UserID, agg); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.BetResolvedEvent{
		BetID:         resolved.ID,
		UserID:        resolved.UserID,
		Status:        resolved.Status,
		PointsAwarded: resolved.PointsAwarded,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return resolved, nil
}
