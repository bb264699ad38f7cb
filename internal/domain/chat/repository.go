package chat

import (
	"context"
	"time"

	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

// Page selects messages older than BeforeID (all when zero), newest first.
type Page struct {
	Limit    int
	BeforeID uint
}

type Repository interface {
	UserExists(ctx context.Context, id uint) (bool, error)

	// ListChats returns userID's chats, most recently active first.
	ListChats(ctx context.Context, userID uint) ([]dto.ChatView, error)

	// OpenChat returns the chat between the ordered pair, creating it if
	// needed.
	OpenChat(ctx context.Context, user1ID, user2ID uint) (*models.Chat, error)

	GetChat(ctx context.Context, id uint) (*models.Chat, error)

	ListMessages(ctx context.Context, chatID uint, page Page) ([]dto.MessageView, error)

	// AddMessage stores msg and updates the chat's last message.
	AddMessage(ctx context.Context, msg *models.Message, preview string) error

	// MarkRead marks messages in chatID not sent by readerID as read.
	MarkRead(ctx context.Context, chatID, readerID uint, at time.Time) (int64, error)

	// DeleteChat removes the chat and its messages.
	DeleteChat(ctx context.Context, id uint) error
}
