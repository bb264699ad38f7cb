package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBack(t *testing.T) {
	if loc := Location("Not/AZone"); loc == nil {
		t.Fatal("expected a fallback location")
	}
}

func TestFormatLong(t *testing.T) {
	ts := time.Date(2026, 10, 15, 11, 30, 0, 0, time.UTC)
	got := FormatLong(ts, time.FixedZone("MSK", 3*60*60))
	want := "15 октября 2026 г., 14:30"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
