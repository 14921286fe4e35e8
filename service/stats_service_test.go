package service

import (
	"context"
	"testing"

	"parlay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStatsFixture(t *testing.T) (StatsService, *MockUserRepository) {
	t.Helper()

	userRepo := new(MockUserRepository)

	uow := new(MockUnitOfWork)
	uow.SetRepositories(userRepo, new(MockBetRepository), new(MockInviteCodeRepository))
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)

	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)

	return NewStatsService(factory), userRepo
}

func TestStatsService_GetLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns ranks and win rates in repository order", func(t *testing.T) {
		svc, userRepo := newStatsFixture(t)

		entries := []*models.LeaderboardEntry{
			{Username: "leader", TotalPoints: 900, BetsWon: 4, BetsLost: 1},
			{Username: "second", TotalPoints: 500, BetsWon: 1, BetsLost: 3},
			{Username: "untested", TotalPoints: 0},
		}
		userRepo.On("GetLeaderboard", ctx, 0).Return(entries, nil)

		got, err := svc.GetLeaderboard(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, 1, got[0].Rank)
		assert.Equal(t, 2, got[1].Rank)
		assert.Equal(t, 3, got[2].Rank)

		assert.Equal(t, 80.0, got[0].WinRate)
		assert.Equal(t, 25.0, got[1].WinRate)
		// No resolved bets means a zero rate, not a division by zero
		assert.Equal(t, 0.0, got[2].WinRate)
	})

	t.Run("limit is passed through", func(t *testing.T) {
		svc, userRepo := newStatsFixture(t)

		userRepo.On("GetLeaderboard", ctx, 10).Return([]*models.LeaderboardEntry{}, nil)

		got, err := svc.GetLeaderboard(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, got)
		userRepo.AssertExpectations(t)
	})
}
