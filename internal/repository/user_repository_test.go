package repository

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFetch(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())

	created, err := repo.Create(ctx, &model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hashed", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	unknown, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())
	userID := seedUser(t, pool, "bob@example.com")

	username := "bobby"
	updated, err := repo.UpdateProfile(ctx, userID, model.UserUpdate{Username: &username})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, "bob@example.com", updated.Email, "email untouched")

	missing, err := repo.UpdateProfile(ctx, uuid.New(), model.UserUpdate{Username: &username})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_RefreshTokenLifecycle(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewUserRepository(pool, zerolog.Nop())
	userID := seedUser(t, pool, "tokens@example.com")

	require.NoError(t, repo.CreateRefreshToken(ctx, userID, "token-one"))

	stored, err := repo.FindRefreshToken(ctx, "token-one")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, userID, stored.UserID)

	require.NoError(t, repo.DeleteRefreshToken(ctx, "token-one"))

	gone, err := repo.FindRefreshToken(ctx, "token-one")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting an already revoked token is not an error.
	require.NoError(t, repo.DeleteRefreshToken(ctx, "token-one"))
}
