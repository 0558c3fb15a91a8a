package domain

import (
	"testing"
	"time"
)

func TestFormatTimeFixedPrecision(t *testing.T) {
	// Millisecond precision is fixed so equal instants compare equal as strings.
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	got := FormatTime(ts)
	want := "2025-03-14T09:26:53.000Z"
	if got != want {
		t.Errorf("FormatTime() = %q, want %q", got, want)
	}
}

func TestParseTimeRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 123_000_000, time.UTC)
	parsed, err := ParseTime(FormatTime(ts))
	if err != nil {
		t.Fatalf("ParseTime() error = %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("round trip = %v, want %v", parsed, ts)
	}
}

func TestParseTimeAcceptsRFC3339(t *testing.T) {
	parsed, err := ParseTime("2025-03-14T09:26:53Z")
	if err != nil {
		t.Fatalf("ParseTime() error = %v", err)
	}
	if parsed.IsZero() {
		t.Error("parsed time should not be zero")
	}
}
