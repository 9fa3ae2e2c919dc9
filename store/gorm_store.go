package store

import (
	"MoodDiaryGo/models"
	"MoodDiaryGo/utils"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GormStore is the MySQL-backed MoodStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(userID string, mood models.Mood, note *string, day string) (string, error) {
	entry := models.MoodEntry{
		ID:        utils.GenerateID(),
		UserID:    userID,
		Mood:      mood,
		Note:      note,
		Day:       day,
		Timestamp: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return "", fmt.Errorf("insert mood entry: %w", err)
	}
	return entry.ID, nil
}

func (s *GormStore) UpdateMoodAndNote(entryID string, mood models.Mood, note *string) error {
	updates := map[string]interface{}{
		"mood":      mood,
		"timestamp": time.Now(),
	}
	if note != nil {
		updates["note"] = *note
	}
	result := s.db.Model(&models.MoodEntry{}).Where("id = ?", entryID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update mood entry %s: %w", entryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update mood entry %s: no such entry", entryID)
	}
	return nil
}

func (s *GormStore) FindEntryByDay(userID, day string) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find entry for %s on %s: %w", userID, day, err)
	}
	return &entry, nil
}

func (s *GormStore) ListEntries(userID string) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	err := s.db.Where("user_id = ?", userID).Order("day DESC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", userID, err)
	}
	return entries, nil
}

func (s *GormStore) CountByMood(userID string) ([]MoodCount, error) {
	var counts []MoodCount
	err := s.db.Model(&models.MoodEntry{}).
		Select("mood, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("mood").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count moods for %s: %w", userID, err)
	}
	return counts, nil
}

func (s *GormStore) CountByMoodSince(userID, day string) ([]MoodCount, error) {
	var counts []MoodCount
	err := s.db.Model(&models.MoodEntry{}).
		Select("mood, COUNT(*) as count").
		Where("user_id = ? AND day >= ?", userID, day).
		Group("mood").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count recent moods for %s: %w", userID, err)
	}
	return counts, nil
}

func (s *GormStore) DeleteAll(userID string) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.MoodEntry{}).Error; err != nil {
		return fmt.Errorf("delete entries for %s: %w", userID, err)
	}
	return nil
}
