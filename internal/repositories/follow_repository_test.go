package repositories

import (
	"context"
	"testing"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	following, err = repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	n, err := repo.GetFollowersCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repo.GetFollowingCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.Unfollow(ctx, alice.ID, bob.ID))
	n, err = repo.GetFollowersCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNotificationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreateNotification(ctx, &models.Notification{UserID: alice.ID, Message: msg}))
	}
	require.NoError(t, repo.CreateNotification(ctx, &models.Notification{UserID: bob.ID, Message: "for bob"}))

	list, err := repo.GetByUserID(ctx, alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third", list[0].Message)
	assert.Equal(t, "second", list[1].Message)

	unread, err := repo.GetUnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, repo.MarkAllAsRead(ctx, alice.ID))
	unread, err = repo.GetUnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
	unread, err = repo.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
