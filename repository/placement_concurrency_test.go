package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"parlay/events"
	"parlay/models"
	"parlay/repository/testutil"
	"parlay/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Drives concurrent placements through the full service + unit-of-work +
// storage path and checks the weekly caps on what actually landed in the
// database.
func TestBettingService_ConcurrentPlacements(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	betRepo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	svc := service.NewBettingService(NewUnitOfWorkFactory(testDB.DB, events.NewBus()))

	placeBet := func(user *models.User, odds int, kingLock bool) error {
		_, err := svc.PlaceBet(ctx, user.ID, service.PlaceBetInput{
			Sport:         "americanfootball_nfl",
			Description:   fmt.Sprintf("pick at +%d", odds),
			OddsAmerican:  odds,
			GameStartTime: time.Now().Add(24 * time.Hour),
			IsKingLock:    kingLock,
		})
		return err
	}

	t.Run("regular cap holds under concurrent placements", func(t *testing.T) {
		user := testutil.CreateTestUser("contender")
		require.NoError(t, userRepo.Create(ctx, user))

		const attempts = 6
		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = placeBet(user, 150+i, false)
			}(i)
		}
		wg.Wait()

		placed := 0
		for _, err := range results {
			if err == nil {
				placed++
			} else {
				assert.ErrorIs(t, err, models.ErrPolicyViolation)
			}
		}
		assert.Equal(t, models.MaxRegularBetsPerWeek, placed)

		bets, err := betRepo.GetByUserAndWeek(ctx, user.ID, svc.CurrentWeek())
		require.NoError(t, err)

		regular := 0
		for _, bet := range bets {
			if !bet.IsKingLock {
				regular++
			}
		}
		assert.Equal(t, models.MaxRegularBetsPerWeek, regular)
	})

	t.Run("king lock slot holds under concurrent placements", func(t *testing.T) {
		user := testutil.CreateTestUser("king_contender")
		require.NoError(t, userRepo.Create(ctx, user))

		const attempts = 4
		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = placeBet(user, 200+i, true)
			}(i)
		}
		wg.Wait()

		placed := 0
		for _, err := range results {
			if err == nil {
				placed++
			} else {
				assert.ErrorIs(t, err, models.ErrPolicyViolation)
			}
		}
		assert.Equal(t, models.MaxKingLocksPerWeek, placed)

		bets, err := betRepo.GetByUserAndWeek(ctx, user.ID, svc.CurrentWeek())
		require.NoError(t, err)

		kingLocks := 0
		for _, bet := range bets {
			if bet.IsKingLock {
				kingLocks++
			}
		}
		assert.Equal(t, models.MaxKingLocksPerWeek, kingLocks)
	})
}
