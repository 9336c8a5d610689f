package repositories

import (
	"testing"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/casual-cat/instamini-project/internal/testutil"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewDB(t)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	return testutil.CreateUser(t, db, username)
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	return testutil.CreatePost(t, db, userID, content)
}
