package handlers

import (
	"testing"
	"time"

	"example.com/cozyshare/backend/internal/models"
)

// TestMemberName verifies the email fallback for users without a display
// name.
func TestMemberName(t *testing.T) {
	named := models.User{Name: "Alice", Email: "alice@example.com"}
	if got := memberName(named); got != "Alice" {
		t.Fatalf("expected Alice, got %s", got)
	}

	unnamed := models.User{Name: "  ", Email: "bob@example.com"}
	if got := memberName(unnamed); got != "bob@example.com" {
		t.Fatalf("expected email fallback, got %s", got)
	}
}

// TestParseDate covers the plain-date and RFC 3339 forms.
func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-01")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected local midnight March 1, got %v", got)
	}

	got, err = parseDate("2024-03-01T10:30:00Z")
	if err != nil {
		t.Fatalf("parseDate rfc3339: %v", err)
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, err := parseDate("not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
