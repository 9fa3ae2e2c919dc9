package models

import (
	"fmt"
	"strings"
	"time"
)

// Mood is the closed set of moods a user can record.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodNeutral Mood = "neutral"
)

// AllMoods lists the selectable moods in presentation order.
func AllMoods() []Mood {
	return []Mood{MoodHappy, MoodSad, MoodAngry, MoodNeutral}
}

// ParseMood validates a raw token from the channel.
func ParseMood(raw string) (Mood, error) {
	switch Mood(strings.ToLower(strings.TrimSpace(raw))) {
	case MoodHappy:
		return MoodHappy, nil
	case MoodSad:
		return MoodSad, nil
	case MoodAngry:
		return MoodAngry, nil
	case MoodNeutral:
		return MoodNeutral, nil
	default:
		return "", fmt.Errorf("unknown mood %q", raw)
	}
}

// Display returns the capitalized form used in messages.
func (m Mood) Display() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// MoodEntry is one user's persisted mood for one calendar day.
type MoodEntry struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(50);index:idx_mood_entries_user_day" json:"userId"`
	Mood      Mood      `gorm:"type:varchar(20)" json:"mood"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	Day       string    `gorm:"type:varchar(10);index:idx_mood_entries_user_day" json:"day"` // YYYY-MM-DD
	Timestamp time.Time `json:"timestamp"`
}

// NoteOrEmpty returns the note text, or "" when none was recorded.
func (e *MoodEntry) NoteOrEmpty() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}
