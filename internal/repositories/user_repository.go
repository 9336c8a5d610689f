package repositories

import (
	"context"

	"github.com/casual-cat/instamini-project/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateBio(ctx context.Context, id uint, bio string) error
	UpdateProfilePicture(ctx context.Context, id uint, filename string) error
	EnsureUser(ctx context.Context, user *models.User) (created bool, err error)
}

// PostgresUserRepository implements UserRepository on any gorm dialect
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts a user. A taken username surfaces as ErrDuplicate.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateBio(ctx context.Context, id uint, bio string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("bio", bio).Error
}

func (r *PostgresUserRepository) UpdateProfilePicture(ctx context.Context, id uint, filename string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("profile_picture", filename).Error
}

// EnsureUser inserts user unless one with the same username exists
func (r *PostgresUserRepository) EnsureUser(ctx context.Context, user *models.User) (bool, error) {
	res := r.db.WithContext(ctx).Where(models.User{Username: user.Username}).FirstOrCreate(user)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
