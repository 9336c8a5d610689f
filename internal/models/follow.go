package models

import "time"

// Follow records that FollowerID follows FolloweeID
type Follow struct {
	FollowerID uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FolloweeID uint      `json:"followee_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
}
