package chores

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"example.com/cozyshare/backend/internal/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := ParseDueDate(value)
	if err != nil {
		t.Fatalf("parse %s: %v", value, err)
	}
	return parsed
}

// TestAttemptCompleteOnceRoundTrip checks that toggling a one-time chore twice
// returns it to its original completion state.
func TestAttemptCompleteOnceRoundTrip(t *testing.T) {
	chore := models.Chore{
		Title:     "Clean kitchen",
		CreatedBy: "a@x.com",
		Frequency: models.FrequencyOnce,
		DueDate:   mustDate(t, "2024-01-05"),
	}
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

	done, err := AttemptComplete(chore, "a@x.com", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !done.Completed {
		t.Fatal("expected chore to be completed")
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt %v, got %v", now, done.CompletedAt)
	}
	if done.CompletedBy != "a@x.com" {
		t.Fatalf("expected completedBy a@x.com, got %s", done.CompletedBy)
	}

	undone, err := AttemptComplete(done, "a@x.com", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(undone, chore) {
		t.Fatalf("expected round trip to original state, got %+v", undone)
	}
}

// TestAttemptCompleteWeeklyAdvancesDueDate checks the recurring branch:
// completed stays false, the due date advances from the old due date.
func TestAttemptCompleteWeeklyAdvancesDueDate(t *testing.T) {
	chore := models.Chore{
		Title:     "Trash",
		CreatedBy: "a@x.com",
		Frequency: models.FrequencyWeekly,
		DueDate:   mustDate(t, "2024-01-01"),
	}
	now := mustDate(t, "2024-01-02")

	result, err := AttemptComplete(chore, "a@x.com", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Completed {
		t.Fatal("recurring chore must never be marked completed")
	}
	if result.CompletedAt != nil || result.CompletedBy != "" {
		t.Fatal("recurring completion must not touch completedAt/completedBy")
	}
	if got := result.DueDate.Format(dateLayout); got != "2024-01-08" {
		t.Fatalf("expected due date 2024-01-08, got %s", got)
	}
	if result.LastCompletedBy != "a@x.com" {
		t.Fatalf("expected lastCompletedBy a@x.com, got %s", result.LastCompletedBy)
	}
	if result.LastCompletedAt == nil || !result.LastCompletedAt.Equal(now) {
		t.Fatalf("expected lastCompletedAt %v, got %v", now, result.LastCompletedAt)
	}
}

// TestAttemptCompleteOverwritesLastCompletion checks that only the most
// recent completion of a recurring chore is retained.
func TestAttemptCompleteOverwritesLastCompletion(t *testing.T) {
	chore := models.Chore{
		CreatedBy: "a@x.com",
		Frequency: models.FrequencyDaily,
		DueDate:   mustDate(t, "2024-01-01"),
	}

	first, err := AttemptComplete(chore, "a@x.com", mustDate(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second, err := AttemptComplete(first, "a@x.com", mustDate(t, "2024-01-02"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := second.DueDate.Format(dateLayout); got != "2024-01-03" {
		t.Fatalf("expected due date 2024-01-03, got %s", got)
	}
	if !second.LastCompletedAt.Equal(mustDate(t, "2024-01-02")) {
		t.Fatalf("expected last completion overwritten, got %v", second.LastCompletedAt)
	}
}

// TestAttemptCompleteUnauthorized checks that a stranger cannot complete a
// chore and that the record is returned unchanged.
func TestAttemptCompleteUnauthorized(t *testing.T) {
	chore := models.Chore{
		Title:      "Dishes",
		CreatedBy:  "a@x.com",
		AssignedTo: "b@x.com",
		Frequency:  models.FrequencyOnce,
		DueDate:    mustDate(t, "2024-01-05"),
	}

	result, err := AttemptComplete(chore, "c@x.com", time.Now())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !reflect.DeepEqual(result, chore) {
		t.Fatalf("expected chore unchanged, got %+v", result)
	}

	if _, err := AttemptComplete(chore, "", time.Now()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty actor, got %v", err)
	}
}

// TestAttemptCompleteAssigneeAllowed checks that the assignee may complete a
// chore created by someone else.
func TestAttemptCompleteAssigneeAllowed(t *testing.T) {
	chore := models.Chore{
		CreatedBy:  "a@x.com",
		AssignedTo: "b@x.com",
		Frequency:  models.FrequencyOnce,
		DueDate:    mustDate(t, "2024-01-05"),
	}

	result, err := AttemptComplete(chore, "b@x.com", time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Completed {
		t.Fatal("expected chore to be completed")
	}
}

// TestAttemptCompleteLegacyFrequency checks that an empty frequency behaves
// as a one-time chore.
func TestAttemptCompleteLegacyFrequency(t *testing.T) {
	chore := models.Chore{
		CreatedBy: "a@x.com",
		DueDate:   mustDate(t, "2024-01-05"),
	}

	result, err := AttemptComplete(chore, "a@x.com", time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Completed {
		t.Fatal("expected legacy chore to toggle completed")
	}
	if !result.DueDate.Equal(chore.DueDate) {
		t.Fatal("expected due date untouched for one-time chore")
	}
}

// TestNextDueDateMonthEndClamp checks the documented month-end policy.
func TestNextDueDateMonthEndClamp(t *testing.T) {
	cases := map[string]string{
		"2024-01-31": "2024-02-29", // leap year
		"2023-01-31": "2023-02-28",
		"2024-03-31": "2024-04-30",
		"2024-01-15": "2024-02-15",
		"2024-12-15": "2025-01-15",
	}

	for from, want := range cases {
		got := NextDueDate(mustDate(t, from), models.FrequencyMonthly).Format(dateLayout)
		if got != want {
			t.Fatalf("monthly advance of %s: expected %s, got %s", from, want, got)
		}
	}
}

// TestParseDueDatePlainDateIsLocal checks that a plain date string maps to
// local midnight with no timezone shift.
func TestParseDueDatePlainDateIsLocal(t *testing.T) {
	parsed, err := ParseDueDate("2024-03-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	year, month, day := parsed.Date()
	if year != 2024 || month != time.March || day != 1 {
		t.Fatalf("expected March 1 2024, got %v", parsed)
	}
	if parsed.Hour() != 0 || parsed.Minute() != 0 {
		t.Fatalf("expected local midnight, got %v", parsed)
	}
	if parsed.Location() != time.Local {
		t.Fatalf("expected local location, got %v", parsed.Location())
	}
}

// TestParseDueDateTimestamp checks that non-plain values parse as absolute
// timestamps.
func TestParseDueDateTimestamp(t *testing.T) {
	parsed, err := ParseDueDate("2024-03-01T15:04:05Z")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !parsed.Equal(time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", parsed)
	}

	if _, err := ParseDueDate("yesterday"); !errors.Is(err, ErrBadDueDate) {
		t.Fatalf("expected ErrBadDueDate, got %v", err)
	}
}
