package chat

import (
	"context"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type OpenChat struct {
	repo domain.Repository
}

func NewOpenChat(repo domain.Repository) *OpenChat {
	return &OpenChat{repo: repo}
}

// Execute returns the direct chat between userID and otherID, creating it
// on first contact.
func (uc *OpenChat) Execute(
	ctx context.Context,
	userID uint,
	otherID uint,
) (*models.Chat, error) {

	// 1️⃣ Not with yourself
	if userID == otherID {
		return nil, domain.ErrSelfChat
	}

	// 2️⃣ Other user must exist
	ok, err := uc.repo.UserExists(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	// 3️⃣ One chat per pair
	user1, user2 := domain.Pair(userID, otherID)
	return uc.repo.OpenChat(ctx, user1, user2)
}
