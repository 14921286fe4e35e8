package repository

import (
	"context"
	"sync"
	"testing"

	"parlay/models"
	"parlay/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteCodeRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewInviteCodeRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		invite, err := repo.Create(ctx, "NEWCODE1")
		require.NoError(t, err)

		assert.Equal(t, "NEWCODE1", invite.Code)
		assert.True(t, invite.IsActive)
		assert.Nil(t, invite.UsedBy)
		assert.Nil(t, invite.UsedAt)
		assert.False(t, invite.CreatedAt.IsZero())
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "DUPCODE1")
		require.NoError(t, err)

		_, err = repo.Create(ctx, "DUPCODE1")
		assert.Error(t, err)
	})
}

func TestInviteCodeRepository_GetByCode(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewInviteCodeRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing code", func(t *testing.T) {
		invite, err := repo.GetByCode(ctx, "NOSUCHCODE")
		require.NoError(t, err)
		assert.Nil(t, invite)
	})

	t.Run("seeded code present", func(t *testing.T) {
		invite, err := repo.GetByCode(ctx, "PARLAY2024")
		require.NoError(t, err)
		require.NotNil(t, invite)
		assert.True(t, invite.IsConsumable())
	})
}

func TestInviteCodeRepository_Consume(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewInviteCodeRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser("invitee")
	require.NoError(t, userRepo.Create(ctx, user))

	t.Run("consume active code", func(t *testing.T) {
		_, err := repo.Create(ctx, "CONSUMEME")
		require.NoError(t, err)

		require.NoError(t, repo.Consume(ctx, "CONSUMEME", user.ID))

		invite, err := repo.GetByCode(ctx, "CONSUMEME")
		require.NoError(t, err)
		assert.False(t, invite.IsActive)
		require.NotNil(t, invite.UsedBy)
		assert.Equal(t, user.ID, *invite.UsedBy)
		assert.NotNil(t, invite.UsedAt)
		assert.False(t, invite.IsConsumable())
	})

	t.Run("consumed code cannot be consumed again", func(t *testing.T) {
		other := testutil.CreateTestUser("second_invitee")
		require.NoError(t, userRepo.Create(ctx, other))

		_, err := repo.Create(ctx, "ONESHOT")
		require.NoError(t, err)

		require.NoError(t, repo.Consume(ctx, "ONESHOT", user.ID))
		err = repo.Consume(ctx, "ONESHOT", other.ID)
		assert.ErrorIs(t, err, models.ErrInviteCodeUsed)
	})

	t.Run("concurrent consumption yields exactly one winner", func(t *testing.T) {
		_, err := repo.Create(ctx, "RACEME")
		require.NoError(t, err)

		const attempts = 8
		users := make([]*models.User, attempts)
		for i := range users {
			users[i] = testutil.CreateTestUser("racer_" + string(rune('a'+i)))
			require.NoError(t, userRepo.Create(ctx, users[i]))
		}

		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = repo.Consume(ctx, "RACEME", users[i].ID)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range results {
			if err == nil {
				winners++
			} else {
				assert.ErrorIs(t, err, models.ErrInviteCodeUsed)
			}
		}
		assert.Equal(t, 1, winners)
	})

	t.Run("missing code", func(t *testing.T) {
		err := repo.Consume(ctx, "NOSUCHCODE", user.ID)
		assert.ErrorIs(t, err, models.ErrInviteCodeUsed)
	})
}

func TestInviteCodeRepository_GetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewInviteCodeRepository(testDB.DB)
	ctx := context.Background()

	codes, err := repo.GetAll(ctx)
	require.NoError(t, err)

	// The seed migration installs the launch codes
	seen := make(map[string]bool)
	for _, code := range codes {
		seen[code.Code] = true
	}
	assert.True(t, seen["PARLAY2024"])
	assert.True(t, seen["PRINCE123"])
}
