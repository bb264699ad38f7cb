package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "REMINDER_INTERVAL", "REMINDER_CONCURRENCY", "EMAIL_TIMEOUT", "CORS_ORIGIN", "SMTP_HOST", "SMTP_FROM", "SMTP_USER", "JWT_EXPIRES_IN"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.ReminderInterval != time.Minute || cfg.ReminderConcurrency != 4 || cfg.EmailTimeout != 10*time.Second {
		t.Fatalf("unexpected reminder defaults %+v", cfg)
	}
	if cfg.JWTExpiresIn != 168*time.Hour {
		t.Fatalf("unexpected jwt expiry %v", cfg.JWTExpiresIn)
	}
	if cfg.SMTPEnabled() {
		t.Fatal("smtp enabled without host")
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("REMINDER_CONCURRENCY", "8")
	t.Setenv("EMAIL_TIMEOUT", "bogus")
	t.Setenv("CORS_ORIGIN", "https://a.example, https://b.example ,")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "apikey")
	t.Setenv("SMTP_FROM", "")

	cfg := Load()

	if cfg.Addr() != ":9000" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
	if cfg.ReminderInterval != 30*time.Second || cfg.ReminderConcurrency != 8 {
		t.Fatalf("overrides ignored %+v", cfg)
	}
	if cfg.EmailTimeout != 10*time.Second {
		t.Fatalf("invalid duration should fall back, got %v", cfg.EmailTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if !cfg.SMTPEnabled() {
		t.Fatal("smtp should be enabled")
	}
	if cfg.SMTPFrom != "apikey" {
		t.Fatalf("sender should fall back to SMTP_USER, got %q", cfg.SMTPFrom)
	}

	t.Setenv("SMTP_FROM", "noreply@yakrash.example")
	if got := Load().SMTPFrom; got != "noreply@yakrash.example" {
		t.Fatalf("unexpected sender %q", got)
	}
}
