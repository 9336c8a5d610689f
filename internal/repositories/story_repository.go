package repositories

import (
	"context"
	"time"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetActiveStories(ctx context.Context, since time.Time) ([]models.Story, error)
}

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

// GetActiveStories returns stories created at or after since, newest first
func (r *storyRepository) GetActiveStories(ctx context.Context, since time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.WithContext(ctx).Preload("User").
		Where("created_at >= ?", since).
		Order("created_at DESC").Order("id DESC").
		Find(&stories).Error
	return stories, err
}
