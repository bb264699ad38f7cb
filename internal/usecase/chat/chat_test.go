package chat

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	domain "github.com/BruksfildServices01/beauty-scheduler/internal/domain/chat"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func TestOpenChat(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(4, 9)
	uc := NewOpenChat(repo)

	if _, err := uc.Execute(ctx, 4, 4); !httperr.IsBusiness(err, "chat_with_self") {
		t.Fatalf("expected chat_with_self, got %v", err)
	}
	if _, err := uc.Execute(ctx, 4, 77); !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}

	first, err := uc.Execute(ctx, 9, 4)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if first.User1ID != 4 || first.User2ID != 9 || first.Type != domain.TypeDirect {
		t.Fatalf("unexpected chat %+v", first)
	}

	again, err := uc.Execute(ctx, 4, 9)
	if err != nil || again.ID != first.ID {
		t.Fatalf("expected the same chat, got %+v %v", again, err)
	}
	if len(repo.chats) != 1 {
		t.Fatalf("expected one chat, got %d", len(repo.chats))
	}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(4, 9, 5)
	c, _ := NewOpenChat(repo).Execute(ctx, 4, 9)
	uc := NewSendMessage(repo)

	if _, err := uc.Execute(ctx, 4, c.ID, "   ", now); !httperr.IsBusiness(err, "empty_message") {
		t.Fatalf("expected empty_message, got %v", err)
	}
	if _, err := uc.Execute(ctx, 5, c.ID, "привет", now); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("outsider sent a message: %v", err)
	}
	if _, err := uc.Execute(ctx, 4, 999, "привет", now); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("missing chat should be forbidden, got %v", err)
	}

	long := "  " + strings.Repeat("ю", 150) + "  "
	msg, err := uc.Execute(ctx, 4, c.ID, long, now)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SenderID != 4 || utf8.RuneCountInString(msg.Text) != 150 || !msg.CreatedAt.Equal(now) {
		t.Fatalf("unexpected message %+v", msg)
	}

	stored := repo.chats[c.ID]
	if stored.LastMessage == nil || utf8.RuneCountInString(*stored.LastMessage) != domain.PreviewLength {
		t.Fatalf("preview not updated: %v", stored.LastMessage)
	}
	if stored.LastMessageTime == nil || !stored.LastMessageTime.Equal(now) {
		t.Fatalf("last message time %v", stored.LastMessageTime)
	}
}

func TestListMessagesIsChronologicalAndMarksRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(4, 9)
	c, _ := NewOpenChat(repo).Execute(ctx, 4, 9)
	send := NewSendMessage(repo)

	for i, from := range []uint{4, 9, 4, 9} {
		if _, err := send.Execute(ctx, from, c.ID, strings.Repeat("x", i+1), now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	msgs, err := NewListMessages(repo).Execute(ctx, 4, c.ID, domain.Page{Limit: 3}, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 || msgs[0].Text != "xx" || msgs[2].Text != "xxxx" {
		t.Fatalf("expected the last three in order, got %+v", msgs)
	}

	for _, m := range repo.messages {
		wantRead := m.SenderID == 9
		if m.IsRead != wantRead {
			t.Fatalf("message %d from %d read=%v", m.ID, m.SenderID, m.IsRead)
		}
	}

	if _, err := NewListMessages(repo).Execute(ctx, 4, c.ID, domain.Page{Limit: 1000}, now); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastPage.Limit != domain.DefaultMessageLimit {
		t.Fatalf("limit not clamped: %d", repo.lastPage.Limit)
	}
}

func TestMarkChatRead(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(4, 9, 5)
	c, _ := NewOpenChat(repo).Execute(ctx, 4, 9)
	send := NewSendMessage(repo)
	_, _ = send.Execute(ctx, 9, c.ID, "один", now)
	_, _ = send.Execute(ctx, 9, c.ID, "два", now)

	uc := NewMarkChatRead(repo)
	if _, err := uc.Execute(ctx, 5, c.ID, now); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}
	n, err := uc.Execute(ctx, 4, c.ID, now)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 marked, got %d %v", n, err)
	}
	if n, _ := uc.Execute(ctx, 9, c.ID, now); n != 0 {
		t.Fatalf("own messages marked read: %d", n)
	}
}

func TestDeleteChat(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(4, 9, 5)
	c, _ := NewOpenChat(repo).Execute(ctx, 4, 9)
	_, _ = NewSendMessage(repo).Execute(ctx, 4, c.ID, "привет", now)

	uc := NewDeleteChat(repo, nil)
	if err := uc.Execute(ctx, 5, c.ID); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("outsider deleted chat: %v", err)
	}
	if err := uc.Execute(ctx, 9, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.chats) != 0 || len(repo.messages) != 0 {
		t.Fatalf("chat or messages left: %d %d", len(repo.chats), len(repo.messages))
	}

	chats, _ := NewListChats(repo).Execute(ctx, 4)
	if len(chats) != 0 {
		t.Fatalf("deleted chat still listed")
	}
}
