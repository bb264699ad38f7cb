package chat

import (
	"context"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

// requireMember loads chatID and checks userID takes part in it. A missing
// chat is reported the same way as a foreign one.
func requireMember(ctx context.Context, repo domain.Repository, chatID, userID uint) (*models.Chat, error) {
	c, err := repo.GetChat(ctx, chatID)
	if httperr.IsBusiness(err, "chat_not_found") {
		return nil, domain.ErrNoAccess
	}
	if err != nil {
		return nil, err
	}
	if !domain.IsMember(c, userID) {
		return nil, domain.ErrNoAccess
	}
	return c, nil
}
