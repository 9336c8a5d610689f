package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	GetSavedPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post with its author
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts returns every post, newest first, with authors
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}

// GetPostsByUserID returns a user's posts, newest first
func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&posts).Error
	return posts, err
}

// GetSavedPostsByUserID returns the posts a user saved, newest post first
func (r *PostgresPostRepository) GetSavedPostsByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Preload("User").
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id").
		Where("saved_posts.user_id = ?", userID).
		Order("posts.created_at DESC").Order("posts.id DESC").
		Find(&posts).Error
	return posts, err
}

// DeletePost removes a post with its likes, saves and comments in one transaction
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		// comments also cascade at the store; deleting here keeps dialects without FK enforcement consistent
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
