package models

import "time"

// Message is a directed private message
type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index;not null"`
	Sender      User      `json:"-" gorm:"foreignKey:SenderID"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	Recipient   User      `json:"-" gorm:"foreignKey:RecipientID"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index;not null"`
}

// MessageView is a message joined with both parties' display identities
type MessageView struct {
	ID                      uint   `json:"id"`
	Content                 string `json:"content"`
	CreatedAt               string `json:"created_at"`
	SenderID                uint   `json:"sender_id"`
	SenderName              string `json:"sender_name"`
	SenderProfilePicture    string `json:"sender_profile_picture"`
	RecipientID             uint   `json:"recipient_id"`
	RecipientName           string `json:"recipient_name"`
	RecipientProfilePicture string `json:"recipient_profile_picture,omitempty"`
}

// ToView joins a message with its preloaded sender and recipient
func (m *Message) ToView() MessageView {
	return MessageView{
		ID:                      m.ID,
		Content:                 m.Content,
		CreatedAt:               m.CreatedAt.Format(TimestampLayout),
		SenderID:                m.SenderID,
		SenderName:              m.Sender.Username,
		SenderProfilePicture:    m.Sender.ProfilePicture,
		RecipientID:             m.RecipientID,
		RecipientName:           m.Recipient.Username,
		RecipientProfilePicture: m.Recipient.ProfilePicture,
	}
}

// SendMessageRequest is the direct message form
type SendMessageRequest struct {
	Content string `form:"content"`
}
