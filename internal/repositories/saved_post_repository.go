package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	Toggler
	GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	Toggler
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{
		Toggler: &checkThenActToggle{
			db:    db,
			model: func() interface{} { return &models.SavedPost{} },
			newRow: func(postID, userID uint) interface{} {
				return &models.SavedPost{PostID: postID, UserID: userID}
			},
		},
		db: db,
	}
}

func (r *PostgresSavedPostRepository) GetSavedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return markedPostIDs(ctx, r.db, &models.SavedPost{}, userID, postIDs)
}
