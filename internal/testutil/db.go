// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/casual-cat/instamini-project/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory sqlite database that is closed with the test
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// CreateUser inserts a user whose password is "password"
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreatePost inserts a text post
func CreatePost(t testing.TB, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: userID, Content: content}
	require.NoError(t, db.Create(p).Error)
	return p
}
