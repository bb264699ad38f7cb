package chat

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

type fakeRepo struct {
	users    map[uint]bool
	chats    map[uint]*models.Chat
	messages []*models.Message
	nextID   uint
	lastPage domain.Page
}

func newFakeRepo(users ...uint) *fakeRepo {
	r := &fakeRepo{users: map[uint]bool{}, chats: map[uint]*models.Chat{}}
	for _, u := range users {
		r.users[u] = true
	}
	return r
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) UserExists(_ context.Context, id uint) (bool, error) {
	return r.users[id], nil
}

func (r *fakeRepo) ListChats(_ context.Context, userID uint) ([]dto.ChatView, error) {
	var out []dto.ChatView
	for _, c := range r.chats {
		if domain.IsMember(c, userID) {
			out = append(out, dto.ChatView{Chat: *c})
		}
	}
	return out, nil
}

func (r *fakeRepo) OpenChat(_ context.Context, user1, user2 uint) (*models.Chat, error) {
	for _, c := range r.chats {
		if c.User1ID == user1 && c.User2ID == user2 {
			return c, nil
		}
	}
	c := &models.Chat{ID: r.id(), User1ID: user1, User2ID: user2, Type: domain.TypeDirect}
	r.chats[c.ID] = c
	return c, nil
}

func (r *fakeRepo) GetChat(_ context.Context, id uint) (*models.Chat, error) {
	c, ok := r.chats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) ListMessages(_ context.Context, chatID uint, page domain.Page) ([]dto.MessageView, error) {
	r.lastPage = page
	var out []dto.MessageView
	for _, m := range r.messages {
		if m.ChatID == chatID && (page.BeforeID == 0 || m.ID < page.BeforeID) {
			out = append(out, dto.MessageView{Message: *m})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, nil
}

func (r *fakeRepo) AddMessage(_ context.Context, msg *models.Message, preview string) error {
	msg.ID = r.id()
	r.messages = append(r.messages, msg)
	c := r.chats[msg.ChatID]
	at := msg.CreatedAt
	c.LastMessage, c.LastMessageTime = &preview, &at
	return nil
}

func (r *fakeRepo) MarkRead(_ context.Context, chatID, readerID uint, at time.Time) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.ChatID == chatID && m.SenderID != readerID && !m.IsRead {
			m.IsRead, m.ReadAt = true, &at
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) DeleteChat(_ context.Context, id uint) error {
	delete(r.chats, id)
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ChatID != id {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}
