package repository

import (
	"context"
	"testing"

	"parlay/models"
	"parlay/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation with zeroed aggregates", func(t *testing.T) {
		user := testutil.CreateTestUser("fresh")

		err := repo.Create(ctx, user)
		require.NoError(t, err)

		assert.NotZero(t, user.ID)
		assert.Equal(t, 0, user.TotalPoints)
		assert.Equal(t, 0, user.BetsWon)
		assert.Equal(t, 0, user.BetsLost)
		assert.Equal(t, 0, user.BiggestHit)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		first := testutil.CreateTestUser("email_holder")
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.CreateTestUser("email_wanter")
		second.Email = first.Email
		err := repo.Create(ctx, second)
		assert.Error(t, err)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		first := testutil.CreateTestUser("name_holder")
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.CreateTestUser("name_holder")
		second.Email = "different@example.com"
		err := repo.Create(ctx, second)
		assert.Error(t, err)
	})
}

func TestUserRepository_Lookups(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("lookup_me")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("by ID", func(t *testing.T) {
		found, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.Username, found.Username)
	})

	t.Run("by email", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("by username", func(t *testing.T) {
		found, err := repo.GetByUsername(ctx, user.Username)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("missing user is nil, not error", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserRepository_UpdateAggregates(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("aggregated")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("overwrites statistics wholesale", func(t *testing.T) {
		agg := models.UserAggregates{
			TotalPoints: 750,
			BetsWon:     2,
			BetsLost:    1,
			BiggestHit:  600,
		}
		require.NoError(t, repo.UpdateAggregates(ctx, user.ID, agg))

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 750, stored.TotalPoints)
		assert.Equal(t, 2, stored.BetsWon)
		assert.Equal(t, 1, stored.BetsLost)
		assert.Equal(t, 600, stored.BiggestHit)
	})

	t.Run("missing user", func(t *testing.T) {
		err := repo.UpdateAggregates(ctx, 999999, models.UserAggregates{})
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

func TestUserRepository_GetLeaderboard(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	seed := func(username string, agg models.UserAggregates) *models.User {
		user := testutil.CreateTestUser(username)
		require.NoError(t, repo.Create(ctx, user))
		require.NoError(t, repo.UpdateAggregates(ctx, user.ID, agg))
		return user
	}

	seed("midfield", models.UserAggregates{TotalPoints: 500, BetsWon: 3, BetsLost: 2, BiggestHit: 200})
	seed("leader", models.UserAggregates{TotalPoints: 900, BetsWon: 4, BetsLost: 1, BiggestHit: 400})
	seed("tied_more_wins", models.UserAggregates{TotalPoints: 500, BetsWon: 5, BetsLost: 5, BiggestHit: 100})
	seed("tied_bigger_hit", models.UserAggregates{TotalPoints: 500, BetsWon: 3, BetsLost: 0, BiggestHit: 450})

	admin := testutil.CreateTestAdmin("the_admin")
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.UpdateAggregates(ctx, admin.ID, models.UserAggregates{TotalPoints: 9999}))

	t.Run("ordering with tie-breaks, admins excluded", func(t *testing.T) {
		entries, err := repo.GetLeaderboard(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 4)

		assert.Equal(t, "leader", entries[0].Username)
		assert.Equal(t, "tied_more_wins", entries[1].Username)
		assert.Equal(t, "tied_bigger_hit", entries[2].Username)
		assert.Equal(t, "midfield", entries[3].Username)
	})

	t.Run("limit applies after ordering", func(t *testing.T) {
		entries, err := repo.GetLeaderboard(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "leader", entries[0].Username)
		assert.Equal(t, "tied_more_wins", entries[1].Username)
	})
}
