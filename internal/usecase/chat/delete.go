package chat

import (
	"context"

	"github.com/BruksfildServices01/beauty-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
)

type DeleteChat struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteChat(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteChat {
	return &DeleteChat{
		repo:  repo,
		audit: audit,
	}
}

// Execute deletes the chat for both participants, messages included.
func (uc *DeleteChat) Execute(ctx context.Context, userID, chatID uint) error {
	c, err := requireMember(ctx, uc.repo, chatID, userID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteChat(ctx, c.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "chat_deleted",
		Entity:   "chat",
		EntityID: &chatID,
		Metadata: map[string]any{"user1_id": c.User1ID, "user2_id": c.User2ID},
	})
	return nil
}
