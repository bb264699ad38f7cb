package chat

import (
	"context"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
)

type ListChats struct {
	repo domain.Repository
}

func NewListChats(repo domain.Repository) *ListChats {
	return &ListChats{repo: repo}
}

func (uc *ListChats) Execute(ctx context.Context, userID uint) ([]dto.ChatView, error) {
	return uc.repo.ListChats(ctx, userID)
}
