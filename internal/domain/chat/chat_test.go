package chat

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/BruksfildServices01/beauty-scheduler/internal/models"
)

func TestPair(t *testing.T) {
	if a, b := Pair(9, 4); a != 4 || b != 9 {
		t.Fatalf("got %d,%d", a, b)
	}
	if a, b := Pair(4, 9); a != 4 || b != 9 {
		t.Fatalf("got %d,%d", a, b)
	}
}

func TestIsMember(t *testing.T) {
	c := &models.Chat{User1ID: 4, User2ID: 9}
	if !IsMember(c, 4) || !IsMember(c, 9) || IsMember(c, 5) {
		t.Fatal("membership wrong")
	}
}

func TestNormalizeText(t *testing.T) {
	if _, err := NormalizeText("  \n\t "); err != ErrEmptyMessage {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	got, err := NormalizeText("  Привет  ")
	if err != nil || got != "Привет" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestPreviewCountsCharacters(t *testing.T) {
	short := "Добрый день"
	if Preview(short) != short {
		t.Fatal("short text changed")
	}

	long := strings.Repeat("я", PreviewLength+20)
	p := Preview(long)
	if utf8.RuneCountInString(p) != PreviewLength || !utf8.ValidString(p) {
		t.Fatalf("bad preview of %d runes", utf8.RuneCountInString(p))
	}
}

func TestClampLimit(t *testing.T) {
	cases := map[int]int{0: 50, -1: 50, 20: 20, 200: 200, 201: 50}
	for in, want := range cases {
		if got := ClampLimit(in); got != want {
			t.Fatalf("ClampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
