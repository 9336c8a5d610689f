package models

// Like marks a post as liked by a user. At most one per (post, user) is intended
// but not enforced by the store.
type Like struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	PostID uint `json:"post_id" gorm:"index;not null"`
	UserID uint `json:"user_id" gorm:"index;not null"`
}
