package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/dto"
	"github.com/BruksfildServices01/beauty-scheduler/internal/middleware"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
	ucChat "github.com/BruksfildServices01/beauty-scheduler/internal/usecase/chat"
)

// memoryChats holds a single chat between users 4 and 9.
type memoryChats struct {
	chat     models.Chat
	sent     []models.Message
	lastPage domain.Page
	deleted  bool
}

func (m *memoryChats) UserExists(_ context.Context, id uint) (bool, error) {
	return id == 4 || id == 9, nil
}

func (m *memoryChats) ListChats(context.Context, uint) ([]dto.ChatView, error) {
	return []dto.ChatView{{Chat: m.chat, OtherUserID: 9}}, nil
}

func (m *memoryChats) OpenChat(_ context.Context, user1, user2 uint) (*models.Chat, error) {
	if user1 != m.chat.User1ID || user2 != m.chat.User2ID {
		return &models.Chat{ID: 2, User1ID: user1, User2ID: user2}, nil
	}
	return &m.chat, nil
}

func (m *memoryChats) GetChat(_ context.Context, id uint) (*models.Chat, error) {
	if id != m.chat.ID || m.deleted {
		return nil, domain.ErrNotFound
	}
	return &m.chat, nil
}

func (m *memoryChats) ListMessages(_ context.Context, _ uint, page domain.Page) ([]dto.MessageView, error) {
	m.lastPage = page
	return []dto.MessageView{}, nil
}

func (m *memoryChats) AddMessage(_ context.Context, msg *models.Message, _ string) error {
	msg.ID = uint(len(m.sent) + 1)
	m.sent = append(m.sent, *msg)
	return nil
}

func (m *memoryChats) MarkRead(context.Context, uint, uint, time.Time) (int64, error) {
	return 0, nil
}

func (m *memoryChats) DeleteChat(context.Context, uint) error {
	m.deleted = true
	return nil
}

func newChatRouter(repo *memoryChats, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewChatHandler(
		ucChat.NewListChats(repo),
		ucChat.NewOpenChat(repo),
		ucChat.NewListMessages(repo),
		ucChat.NewSendMessage(repo),
		ucChat.NewMarkChatRead(repo),
		ucChat.NewDeleteChat(repo, nil),
	)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	r.GET("/chats", h.List)
	r.POST("/chats/with/:userId", h.Open)
	r.GET("/chats/:chatId/messages", h.Messages)
	r.POST("/chats/:chatId/messages", h.Send)
	r.POST("/chats/:chatId/read", h.MarkRead)
	r.DELETE("/chats/:chatId", h.Delete)
	return r
}

func TestChatSendMessage(t *testing.T) {
	repo := &memoryChats{chat: models.Chat{ID: 1, User1ID: 4, User2ID: 9}}
	r := newChatRouter(repo, 9)

	w := do(r, http.MethodPost, "/chats/1/messages", `{"text":"  Привет  "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool           `json:"success"`
		Message models.Message `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message.Text != "Привет" || body.Message.SenderID != 9 {
		t.Fatalf("unexpected body %+v", body)
	}
	if len(repo.sent) != 1 {
		t.Fatalf("expected one stored message, got %d", len(repo.sent))
	}
}

func TestChatRejects(t *testing.T) {
	cases := []struct {
		name   string
		userID uint
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"chat with self", 4, http.MethodPost, "/chats/with/4", "", http.StatusBadRequest, "chat_with_self"},
		{"unknown user", 4, http.MethodPost, "/chats/with/77", "", http.StatusNotFound, "user_not_found"},
		{"bad user id", 4, http.MethodPost, "/chats/with/abc", "", http.StatusBadRequest, "invalid_id"},
		{"empty text", 4, http.MethodPost, "/chats/1/messages", `{"text":"   "}`, http.StatusBadRequest, "empty_message"},
		{"stranger sends", 5, http.MethodPost, "/chats/1/messages", `{"text":"hi"}`, http.StatusForbidden, "forbidden"},
		{"missing chat", 4, http.MethodGet, "/chats/3/messages", "", http.StatusForbidden, "forbidden"},
		{"bad cursor", 4, http.MethodGet, "/chats/1/messages?before=x", "", http.StatusBadRequest, "invalid_id"},
		{"stranger deletes", 5, http.MethodDelete, "/chats/1", "", http.StatusForbidden, "forbidden"},
	}

	for _, tc := range cases {
		repo := &memoryChats{chat: models.Chat{ID: 1, User1ID: 4, User2ID: 9}}
		w := do(newChatRouter(repo, tc.userID), tc.method, tc.path, tc.body)
		if w.Code != tc.status || !strings.Contains(w.Body.String(), tc.code) {
			t.Fatalf("%s: expected %d %s, got %d %s", tc.name, tc.status, tc.code, w.Code, w.Body.String())
		}
		if len(repo.sent) != 0 || repo.deleted {
			t.Fatalf("%s: repository changed", tc.name)
		}
	}
}

func TestChatMessagesPaging(t *testing.T) {
	repo := &memoryChats{chat: models.Chat{ID: 1, User1ID: 4, User2ID: 9}}
	r := newChatRouter(repo, 4)

	if w := do(r, http.MethodGet, "/chats/1/messages?limit=20&before=15", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if repo.lastPage.Limit != 20 || repo.lastPage.BeforeID != 15 {
		t.Fatalf("page not parsed: %+v", repo.lastPage)
	}

	do(r, http.MethodGet, "/chats/1/messages?limit=abc", "")
	if repo.lastPage.Limit != domain.DefaultMessageLimit {
		t.Fatalf("expected default limit, got %d", repo.lastPage.Limit)
	}
}

func TestChatOpenAndDelete(t *testing.T) {
	repo := &memoryChats{chat: models.Chat{ID: 1, User1ID: 4, User2ID: 9}}
	r := newChatRouter(repo, 9)

	w := do(r, http.MethodPost, "/chats/with/4", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"chat":{"id":1`) {
		t.Fatalf("expected existing chat, got %d %s", w.Code, w.Body.String())
	}

	if w := do(r, http.MethodDelete, "/chats/1", ""); w.Code != http.StatusOK || !repo.deleted {
		t.Fatalf("expected delete, got %d", w.Code)
	}
}
