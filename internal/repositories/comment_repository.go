package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID retrieves a comment with its author
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostIDs returns comments grouped by post, oldest first within each post
func (r *PostgresCommentRepository) GetCommentsByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error) {
	result := make(map[uint][]models.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	// each post's comments fall in exactly one chunk, so per-post order holds
	err := forEachIDChunk(postIDs, func(chunk []uint) error {
		var comments []models.Comment
		if err := r.db.WithContext(ctx).Preload("User").
			Where("post_id IN ?", chunk).
			Order("created_at ASC").Order("id ASC").
			Find(&comments).Error; err != nil {
			return err
		}
		for _, c := range comments {
			result[c.PostID] = append(result[c.PostID], c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
