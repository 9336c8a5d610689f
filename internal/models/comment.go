package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// CommentView is a comment joined with its author's display identity
type CommentView struct {
	ID             uint   `json:"id"`
	PostID         uint   `json:"post_id"`
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

// TimestampLayout is how timestamps are rendered in JSON payloads
const TimestampLayout = "2006-01-02 15:04:05"

// ToView joins a comment with its preloaded author
func (c *Comment) ToView() CommentView {
	return CommentView{
		ID:             c.ID,
		PostID:         c.PostID,
		UserID:         c.UserID,
		Username:       c.User.Username,
		ProfilePicture: c.User.ProfilePicture,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt.Format(TimestampLayout),
	}
}

// CreateCommentRequest is the comment form
type CreateCommentRequest struct {
	Content string `form:"comment_content"`
}
