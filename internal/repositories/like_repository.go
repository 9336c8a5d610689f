package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Toggler
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
	GetLikesCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository
type PostgresLikeRepository struct {
	Toggler
	db *gorm.DB
}

// NewPostgresLikeRepository creates a like repository toggling with check-then-act
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{
		Toggler: &checkThenActToggle{
			db:    db,
			model: func() interface{} { return &models.Like{} },
			newRow: func(postID, userID uint) interface{} {
				return &models.Like{PostID: postID, UserID: userID}
			},
		},
		db: db,
	}
}

// GetLikesCountByPostID counts like rows for a post, duplicates included
func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetLikesCounts counts like rows per post, one grouped query per id chunk. Posts without likes are absent.
func (r *PostgresLikeRepository) GetLikesCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	err := forEachIDChunk(postIDs, func(chunk []uint) error {
		var rows []postCount
		if err := r.db.WithContext(ctx).Model(&models.Like{}).
			Select("post_id, COUNT(*) AS count").
			Where("post_id IN ?", chunk).
			Group("post_id").
			Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			result[row.PostID] = row.Count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetLikedPostIDs reports which of postIDs the user has liked
func (r *PostgresLikeRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return markedPostIDs(ctx, r.db, &models.Like{}, userID, postIDs)
}
