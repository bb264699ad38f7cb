package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	tok, err := tokens.Issue(42, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := tokens.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestParseRejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	expired, _ := tokens.Issue(1, time.Now().Add(-2*time.Hour))
	foreign, _ := NewTokens("other", time.Hour).Issue(1, time.Now())

	for name, tok := range map[string]string{
		"expired": expired,
		"foreign": foreign,
		"garbage": "not.a.token",
		"empty":   "",
	} {
		if _, err := tokens.Parse(tok); err != ErrInvalidToken {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
