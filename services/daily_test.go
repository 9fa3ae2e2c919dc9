package services_test

import (
	"MoodDiaryGo/models"
	"MoodDiaryGo/services"
	"MoodDiaryGo/store"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasEntryToday(t *testing.T) {
	fs := newFakeStore()
	checker := services.NewDailyChecker(fs)

	has, err := checker.HasEntryToday("u1")
	require.NoError(t, err)
	assert.False(t, has)

	fs.seed("u1", models.MoodHappy, nil, store.Today())

	has, err = checker.HasEntryToday("u1")
	require.NoError(t, err)
	assert.True(t, has)

	// Other users and other days don't count.
	has, err = checker.HasEntryToday("u2")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasEntryTodayIgnoresPastDays(t *testing.T) {
	fs := newFakeStore()
	checker := services.NewDailyChecker(fs)

	yesterday := store.DayKey(time.Now().AddDate(0, 0, -1))
	fs.seed("u1", models.MoodSad, nil, yesterday)

	has, err := checker.HasEntryToday("u1")
	require.NoError(t, err)
	assert.False(t, has, "an entry from a previous day must not block today")
}

func TestTodayEntry(t *testing.T) {
	fs := newFakeStore()
	checker := services.NewDailyChecker(fs)

	entry, err := checker.TodayEntry("u1")
	require.NoError(t, err)
	assert.Nil(t, entry)

	id := fs.seed("u1", models.MoodNeutral, strPtr("quiet day"), store.Today())

	entry, err = checker.TodayEntry("u1")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, models.MoodNeutral, entry.Mood)
}
