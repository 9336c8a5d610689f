package models

// SavedPost represents a bookmarked post. Same toggle semantics as Like.
type SavedPost struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"index;not null"`
	PostID uint `json:"post_id" gorm:"index;not null"`
}
