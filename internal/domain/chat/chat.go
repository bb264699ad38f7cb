package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

const (
	TypeDirect = "direct"

	// PreviewLength caps the last_message preview, in characters.
	PreviewLength = 100

	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
)

var (
	ErrNotFound     = httperr.ErrBusiness("chat_not_found")
	ErrUserNotFound = httperr.ErrBusiness("user_not_found")
	ErrSelfChat     = httperr.ErrBusiness("chat_with_self")
	ErrEmptyMessage = httperr.ErrBusiness("empty_message")

	// ErrNoAccess covers both a missing chat and one the caller is not in.
	ErrNoAccess = httperr.ErrBusiness("forbidden")
)

// Pair orders two user ids the way they are stored.
func Pair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

func IsMember(c *models.Chat, userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// NormalizeText trims a message and rejects blank ones.
func NormalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	return text, nil
}

// Preview is the start of text stored on the chat for list views.
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	return string([]rune(text)[:PreviewLength])
}

func ClampLimit(n int) int {
	if n <= 0 || n > MaxMessageLimit {
		return DefaultMessageLimit
	}
	return n
}
