package models

import "time"

// StoryLifetime is how long a story stays visible after creation
const StoryLifetime = 24 * time.Hour

// Story is a media-only post visible for StoryLifetime. Rows are never deleted;
// visibility is filtered at query time.
type Story struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	User          User      `json:"-" gorm:"foreignKey:UserID"`
	MediaFilename string    `json:"media_filename" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at" gorm:"index;not null"`
}

// ActiveSince returns the oldest creation time still visible at now
func ActiveSince(now time.Time) time.Time {
	return now.Add(-StoryLifetime)
}
