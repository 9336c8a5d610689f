package models

import "time"

// Post is a user's post. Its comments are removed by the store when the post is deleted.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	User          User      `json:"-" gorm:"foreignKey:UserID"`
	Content       string    `json:"content" gorm:"type:text"`
	MediaFilename string    `json:"media_filename" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at" gorm:"index;not null"`
	Comments      []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreatePostRequest is the feed form. Media arrives as the multipart file "media_file".
type CreatePostRequest struct {
	Content string `form:"content"`
}
