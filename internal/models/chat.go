package models

import "time"

// Chat is a direct conversation between two users. User1ID is always the
// smaller id, so a pair maps to exactly one row.
type Chat struct {
	ID uint `gorm:"primaryKey" json:"id"`

	User1ID uint   `gorm:"not null;uniqueIndex:idx_chats_pair" json:"user1_id"`
	User2ID uint   `gorm:"not null;uniqueIndex:idx_chats_pair;index" json:"user2_id"`
	Type    string `gorm:"size:20;not null;default:'direct'" json:"type"`

	LastMessage     *string    `gorm:"size:100" json:"last_message"`
	LastMessageTime *time.Time `gorm:"index" json:"last_message_time"`

	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ChatID   uint   `gorm:"index;not null" json:"chat_id"`
	Chat     Chat   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	SenderID uint   `gorm:"index;not null" json:"sender_id"`
	Text     string `gorm:"type:text;not null" json:"text"`

	IsRead bool       `gorm:"default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}
