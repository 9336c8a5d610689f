package repositories

import (
	"context"
	"testing"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.GetUserByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "bob", PasswordHash: "a"}))
	err := repo.CreateUser(ctx, &models.User{Username: "bob", PasswordHash: "b"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()
	u := createTestUser(t, db, "carol")

	require.NoError(t, repo.UpdateBio(ctx, u.ID, "hello there"))
	require.NoError(t, repo.UpdateProfilePicture(ctx, u.ID, "me.png"))

	got, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.Bio)
	assert.Equal(t, "me.png", got.ProfilePicture)

	require.NoError(t, repo.UpdateBio(ctx, u.ID, ""))
	got, err = repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Bio)
	assert.Equal(t, "me.png", got.ProfilePicture)
}

func TestUserRepository_EnsureUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	created, err := repo.EnsureUser(ctx, &models.User{Username: "admin", PasswordHash: "first"})
	require.NoError(t, err)
	assert.True(t, created)

	again := &models.User{Username: "admin", PasswordHash: "second"}
	created, err = repo.EnsureUser(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "first", again.PasswordHash)
}
