// Package chores implements the chore lifecycle rules: who may complete a
// chore and how completion mutates it depending on its recurrence class.
package chores

import (
	"errors"
	"time"

	"example.com/cozyshare/backend/internal/models"
)

var (
	// ErrUnauthorized means the acting user is neither the creator nor the
	// assignee of the chore.
	ErrUnauthorized = errors.New("user may not complete this chore")

	// ErrBadDueDate means a due date string could not be parsed.
	ErrBadDueDate = errors.New("invalid due date")
)

const dateLayout = "2006-01-02"

// AttemptComplete applies a completion attempt by actingUser at time now and
// returns the mutated chore. The input chore is not modified.
//
// One-time chores toggle their completed flag symmetrically: completing sets
// completedAt/completedBy, undoing clears them. Recurring chores are never
// marked completed; instead lastCompletedAt/lastCompletedBy are overwritten
// and the due date advances by the recurrence interval, computed from the
// current due date rather than from now.
func AttemptComplete(chore models.Chore, actingUser string, now time.Time) (models.Chore, error) {
	if actingUser == "" {
		return chore, ErrUnauthorized
	}
	if actingUser != chore.CreatedBy && (chore.AssignedTo == "" || actingUser != chore.AssignedTo) {
		return chore, ErrUnauthorized
	}

	if chore.Frequency.Recurring() {
		completedAt := now
		chore.LastCompletedAt = &completedAt
		chore.LastCompletedBy = actingUser
		chore.DueDate = NextDueDate(chore.DueDate, chore.Frequency)
		return chore, nil
	}

	// Legacy rows with an empty or unknown frequency behave as one-time.
	chore.Completed = !chore.Completed
	if chore.Completed {
		completedAt := now
		chore.CompletedAt = &completedAt
		chore.CompletedBy = actingUser
	} else {
		chore.CompletedAt = nil
		chore.CompletedBy = ""
	}

	return chore, nil
}

// NextDueDate advances a due date by one recurrence interval. Monthly
// advancement preserves the day of month, clamping to the last day of
// shorter target months (Jan 31 -> Feb 28/29).
func NextDueDate(due time.Time, frequency models.Frequency) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return due.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return due.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		return addMonthClamped(due)
	}
	return due
}

func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()

	// Day 0 of the month after next normalizes to the last day of the
	// target month.
	lastDay := time.Date(year, month+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, month+1, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ParseDueDate interprets a plain YYYY-MM-DD string as a local calendar date
// (midnight local, no timezone shift). Any other representation must be an
// RFC 3339 timestamp.
func ParseDueDate(value string) (time.Time, error) {
	if len(value) == len(dateLayout) {
		parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
		if err != nil {
			return time.Time{}, ErrBadDueDate
		}
		return parsed, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrBadDueDate
	}
	return parsed, nil
}
