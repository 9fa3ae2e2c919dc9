package services

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/models"
	"MoodDiaryGo/store"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const weeklyCacheTTL = 10 * time.Minute

// Stats answers the read-only aggregation queries over the mood store.
type Stats struct {
	store store.MoodStore
}

func NewStats(s store.MoodStore) *Stats {
	return &Stats{store: s}
}

// Distribution is a user's all-time per-mood counts.
type Distribution struct {
	Counts []store.MoodCount `json:"counts"`
	Total  int64             `json:"total"`
}

// WeeklyReport covers the last seven days, with percentages.
type WeeklyReport struct {
	Since  string       `json:"since"` // first day included, YYYY-MM-DD
	Moods  []WeeklyMood `json:"moods"`
	Total  int64        `json:"total"`
	Cached bool         `json:"-"`
}

type WeeklyMood struct {
	Mood       models.Mood `json:"mood"`
	Count      int64       `json:"count"`
	Percentage float64     `json:"percentage"`
}

// Overall returns the user's all-time mood distribution.
func (s *Stats) Overall(userID string) (*Distribution, error) {
	counts, err := s.store.CountByMood(userID)
	if err != nil {
		return nil, err
	}
	dist := &Distribution{Counts: counts}
	for _, c := range counts {
		dist.Total += c.Count
	}
	return dist, nil
}

// Weekly returns the last-7-days report, served from the redis cache
// when a fresh copy exists.
func (s *Stats) Weekly(ctx context.Context, userID string) (*WeeklyReport, error) {
	if cached := getCachedWeekly(ctx, userID); cached != nil {
		cached.Cached = true
		return cached, nil
	}

	since := store.DayKey(time.Now().AddDate(0, 0, -6))
	counts, err := s.store.CountByMoodSince(userID, since)
	if err != nil {
		return nil, err
	}

	report := &WeeklyReport{Since: since}
	for _, c := range counts {
		report.Total += c.Count
	}
	for _, c := range counts {
		percentage := 0.0
		if report.Total > 0 {
			percentage = float64(c.Count) / float64(report.Total) * 100
		}
		report.Moods = append(report.Moods, WeeklyMood{
			Mood:       c.Mood,
			Count:      c.Count,
			Percentage: percentage,
		})
	}

	putCachedWeekly(ctx, userID, report)
	return report, nil
}

// History returns the full timeline, newest day first.
func (s *Stats) History(userID string) ([]models.MoodEntry, error) {
	return s.store.ListEntries(userID)
}

func weeklyCacheKey(userID string) string {
	return fmt.Sprintf("weekly:%s", userID)
}

func getCachedWeekly(ctx context.Context, userID string) *WeeklyReport {
	if config.RedisClient == nil {
		return nil
	}
	raw, err := config.RedisClient.Get(ctx, weeklyCacheKey(userID)).Result()
	if err != nil {
		return nil
	}
	var report WeeklyReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		config.Logger.Warnw("dropping unreadable weekly cache entry", "userID", userID, "error", err)
		return nil
	}
	return &report
}

func putCachedWeekly(ctx context.Context, userID string, report *WeeklyReport) {
	if config.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := config.RedisClient.Set(ctx, weeklyCacheKey(userID), raw, weeklyCacheTTL).Err(); err != nil {
		config.Logger.Warnw("weekly cache write failed", "userID", userID, "error", err)
	}
}

// InvalidateWeeklyCache drops the cached weekly report after a write.
func InvalidateWeeklyCache(ctx context.Context, userID string) {
	if config.RedisClient == nil {
		return
	}
	if err := config.RedisClient.Del(ctx, weeklyCacheKey(userID)).Err(); err != nil {
		config.Logger.Warnw("weekly cache invalidation failed", "userID", userID, "error", err)
	}
}
