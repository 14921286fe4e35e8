package server

import (
	"testing"

	"parlay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &models.User{ID: 7, Role: models.RoleAdmin}

	token, err := GenerateJWT(user, "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	user := &models.User{ID: 7, Role: models.RoleUser}

	token, err := GenerateJWT(user, "test-secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", "test-secret")
	assert.Error(t, err)
}
