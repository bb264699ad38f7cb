package dto

import "github.com/BruksfildServices01/beauty-scheduler/internal/models"

// ChatView is a chat as seen by one participant.
type ChatView struct {
	models.Chat
	OtherUserID       uint    `json:"other_user_id"`
	OtherUserName     *string `json:"other_user_name"`
	OtherUserUsername *string `json:"other_user_username"`
	UnreadCount       int64   `json:"unread_count"`
}

type MessageView struct {
	models.Message
	SenderName *string `json:"sender_name"`
}
