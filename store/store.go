package store

import (
	"MoodDiaryGo/models"
	"time"
)

// DayKey formats an instant as the canonical calendar-day string.
// Every read and write path (duplicate check, insert, update, weekly
// range) must go through this one function so the day never drifts
// between code paths. Days are anchored to server-local time.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Today returns the day key for the current instant.
func Today() string {
	return DayKey(time.Now())
}

// MoodCount is one row of a per-mood aggregation.
type MoodCount struct {
	Mood  models.Mood `json:"mood"`
	Count int64       `json:"count"`
}

// MoodStore persists and queries mood entries. It owns no business
// logic; the one-entry-per-day invariant is enforced by callers.
type MoodStore interface {
	// Insert creates an entry for the given day and returns its id.
	Insert(userID string, mood models.Mood, note *string, day string) (string, error)

	// UpdateMoodAndNote mutates an existing entry's mood, refreshing
	// its timestamp. A nil note leaves the stored note untouched.
	UpdateMoodAndNote(entryID string, mood models.Mood, note *string) error

	// FindEntryByDay returns the user's entry for a day, or nil.
	FindEntryByDay(userID, day string) (*models.MoodEntry, error)

	// ListEntries returns all of a user's entries, newest day first.
	ListEntries(userID string) ([]models.MoodEntry, error)

	// CountByMood aggregates all of a user's entries per mood.
	CountByMood(userID string) ([]MoodCount, error)

	// CountByMoodSince aggregates entries whose day is >= the given day.
	CountByMoodSince(userID, day string) ([]MoodCount, error)

	// DeleteAll removes every entry belonging to the user.
	DeleteAll(userID string) error
}
