package controllers

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/services"
	"MoodDiaryGo/store"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats *services.Stats
	store store.MoodStore
}

func NewStatsController(stats *services.Stats, s store.MoodStore) *StatsController {
	return &StatsController{stats: stats, store: s}
}

// GetStats returns the user's all-time mood distribution.
func (sc *StatsController) GetStats(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	dist, err := sc.stats.Overall(uid.(string))
	if err != nil {
		config.Logger.Errorw("stats query failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, dist)
}

// GetWeekly returns the last-7-days report.
func (sc *StatsController) GetWeekly(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	report, err := sc.stats.Weekly(c.Request.Context(), uid.(string))
	if err != nil {
		config.Logger.Errorw("weekly report failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load weekly report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetHistory returns the full mood timeline, newest day first.
func (sc *StatsController) GetHistory(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	entries, err := sc.stats.History(uid.(string))
	if err != nil {
		config.Logger.Errorw("history query failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// ExportData returns every entry for the user as a JSON backup.
func (sc *StatsController) ExportData(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	entries, err := sc.store.ListEntries(uid.(string))
	if err != nil {
		config.Logger.Errorw("export failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export data"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=mood_diary_export.json")
	c.JSON(http.StatusOK, entries)
}

// ClearHistory deletes every entry for the user. The gateway must ask
// the user to confirm first and pass confirm=true.
func (sc *StatsController) ClearHistory(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "confirmation required: pass confirm=true to delete all mood history",
		})
		return
	}

	if err := sc.store.DeleteAll(uid.(string)); err != nil {
		config.Logger.Errorw("clear history failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear history"})
		return
	}

	services.InvalidateWeeklyCache(c.Request.Context(), uid.(string))
	config.Logger.Infow("mood history cleared", "uid", uid)

	c.JSON(http.StatusOK, gin.H{"message": "all mood history has been cleared"})
}
