package models

import "time"

// Notification is a message for UserID, shown on the notifications page
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false;not null"`
}
