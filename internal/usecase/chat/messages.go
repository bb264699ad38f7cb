package chat

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type ListMessages struct {
	repo domain.Repository
}

func NewListMessages(repo domain.Repository) *ListMessages {
	return &ListMessages{repo: repo}
}

// Execute returns a page of messages in chronological order and marks the
// other participant's messages as read.
func (uc *ListMessages) Execute(
	ctx context.Context,
	userID uint,
	chatID uint,
	page domain.Page,
	now time.Time,
) ([]dto.MessageView, error) {

	if _, err := requireMember(ctx, uc.repo, chatID, userID); err != nil {
		return nil, err
	}

	page.Limit = domain.ClampLimit(page.Limit)
	msgs, err := uc.repo.ListMessages(ctx, chatID, page)
	if err != nil {
		return nil, err
	}

	// Stored newest first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	if _, err := uc.repo.MarkRead(ctx, chatID, userID, now); err != nil {
		return nil, err
	}
	return msgs, nil
}

type SendMessage struct {
	repo domain.Repository
}

func NewSendMessage(repo domain.Repository) *SendMessage {
	return &SendMessage{repo: repo}
}

func (uc *SendMessage) Execute(
	ctx context.Context,
	userID uint,
	chatID uint,
	text string,
	now time.Time,
) (*models.Message, error) {

	text, err := domain.NormalizeText(text)
	if err != nil {
		return nil, err
	}

	if _, err := requireMember(ctx, uc.repo, chatID, userID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChatID:    chatID,
		SenderID:  userID,
		Text:      text,
		CreatedAt: now,
	}
	if err := uc.repo.AddMessage(ctx, msg, domain.Preview(text)); err != nil {
		return nil, err
	}
	return msg, nil
}

type MarkChatRead struct {
	repo domain.Repository
}

func NewMarkChatRead(repo domain.Repository) *MarkChatRead {
	return &MarkChatRead{repo: repo}
}

func (uc *MarkChatRead) Execute(ctx context.Context, userID, chatID uint, now time.Time) (int64, error) {
	if _, err := requireMember(ctx, uc.repo, chatID, userID); err != nil {
		return 0, err
	}
	return uc.repo.MarkRead(ctx, chatID, userID, now)
}
