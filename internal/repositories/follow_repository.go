package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// Follow records that followerID follows followeeID. Repeating it is a no-op.
	Follow(ctx context.Context, followerID, followeeID uint) (created bool, err error)
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	res := r.db.WithContext(ctx).Where(follow).FirstOrCreate(&follow)
	return res.RowsAffected > 0, res.Error
}

func (r *PostgresFollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
