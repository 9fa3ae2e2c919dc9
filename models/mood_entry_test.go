package models_test

import (
	"MoodDiaryGo/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMood(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    models.Mood
		wantErr bool
	}{
		{"happy", "happy", models.MoodHappy, false},
		{"sad", "sad", models.MoodSad, false},
		{"angry", "angry", models.MoodAngry, false},
		{"neutral", "neutral", models.MoodNeutral, false},
		{"mixed case", "Happy", models.MoodHappy, false},
		{"surrounding whitespace", " sad ", models.MoodSad, false},
		{"unknown token", "ecstatic", "", true},
		{"empty", "", "", true},
		{"near miss", "happyy", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := models.ParseMood(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoodDisplay(t *testing.T) {
	assert.Equal(t, "Happy", models.MoodHappy.Display())
	assert.Equal(t, "Neutral", models.MoodNeutral.Display())
	assert.Equal(t, "", models.Mood("").Display())
}

func TestNoteOrEmpty(t *testing.T) {
	entry := models.MoodEntry{}
	assert.Equal(t, "", entry.NoteOrEmpty())

	note := "fine"
	entry.Note = &note
	assert.Equal(t, "fine", entry.NoteOrEmpty())
}
