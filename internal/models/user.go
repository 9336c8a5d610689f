package models

import (
	"regexp"
	"time"
)

// AdminUsername is the account that bypasses ownership checks.
const AdminUsername = "admin"

// usernamePattern keeps usernames safe as URL path segments
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidUsername reports whether name uses only letters, digits, '.', '_' and '-'
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// User is an account row. Users are never deleted.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"`
	ProfilePicture string    `json:"profile_picture" gorm:"size:255"`
	Bio            string    `json:"bio" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserCompact is the display identity joined onto posts, stories, comments and messages
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// ToCompact strips a user down to its display identity
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsAdmin reports whether the user is the administrative account
func (u *User) IsAdmin() bool {
	return u.Username == AdminUsername
}

// SignupRequest is the sign-up form
type SignupRequest struct {
	Username string `form:"username" validate:"required,max=255,username"`
	Password string `form:"password" validate:"required,max=72"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// UpdateProfileRequest is the profile edit form. The picture arrives as a multipart file.
type UpdateProfileRequest struct {
	Bio string `form:"bio" validate:"max=5000"`
}
