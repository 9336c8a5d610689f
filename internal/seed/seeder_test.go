package seed

import (
	"context"
	"testing"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/repositories"
	"github.com/casual-cat/instamini-project/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewSeeder(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentRepository(db),
		filter.NewWordSet("bad"),
		zap.NewNop(),
	)

	res, err := s.Run(context.Background(), Options{Users: 3, PostsPerUser: 2, HashCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 3, Posts: 6, Likes: 6, Comments: 6}, res)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DefaultPassword)))
	}

	var selfLikes int64
	require.NoError(t, db.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.user_id = likes.user_id").
		Count(&selfLikes).Error)
	assert.Zero(t, selfLikes)
}

func TestSeeder_RejectsEmptyRun(t *testing.T) {
	s := NewSeeder(nil, nil, nil, nil, filter.WordSet{}, zap.NewNop())
	_, err := s.Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestSeeder_Clean(t *testing.T) {
	s := &Seeder{words: filter.NewWordSet("bad")}
	long := ""
	for i := 0; i < 60; i++ {
		long += "bad "
	}
	out := s.clean(long)
	assert.Equal(t, 50, filter.WordCount(out))
	assert.NotContains(t, out, "bad")
}
