package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetConversation(ctx context.Context, userID, otherID uint) ([]models.Message, error)
	GetConversationPartners(ctx context.Context, userID uint) ([]models.User, error)
}

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetConversation returns messages exchanged in either direction, oldest first
func (r *PostgresMessageRepository) GetConversation(ctx context.Context, userID, otherID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.WithContext(ctx).Preload("Sender").Preload("Recipient").
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").Order("id ASC").
		Find(&msgs).Error
	return msgs, err
}

// GetConversationPartners returns every other user the given user has messaged or been messaged by
func (r *PostgresMessageRepository) GetConversationPartners(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	var users []models.User
	err := db.Where("id <> ? AND (id IN (?) OR id IN (?))", userID,
		db.Model(&models.Message{}).Select("recipient_id").Where("sender_id = ?", userID),
		db.Model(&models.Message{}).Select("sender_id").Where("recipient_id = ?", userID),
	).Order("username ASC").Find(&users).Error
	return users, err
}
