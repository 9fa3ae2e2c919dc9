package services

import (
	"MoodDiaryGo/models"
	"MoodDiaryGo/store"
)

// DailyChecker answers whether a user already has a mood entry for the
// current calendar day. Read-only over the store; both the create-flow
// guard and the update-flow seed go through it so they can never
// disagree on what "today" means.
type DailyChecker struct {
	store store.MoodStore
}

func NewDailyChecker(s store.MoodStore) *DailyChecker {
	return &DailyChecker{store: s}
}

// HasEntryToday reports whether the user recorded a mood today.
func (c *DailyChecker) HasEntryToday(userID string) (bool, error) {
	entry, err := c.store.FindEntryByDay(userID, store.Today())
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// TodayEntry returns today's entry for the user, or nil.
func (c *DailyChecker) TodayEntry(userID string) (*models.MoodEntry, error) {
	return c.store.FindEntryByDay(userID, store.Today())
}
