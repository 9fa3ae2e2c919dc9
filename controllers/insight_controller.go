package controllers

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	insight *services.Insight
}

func NewInsightController(insight *services.Insight) *InsightController {
	return &InsightController{insight: insight}
}

// GetWeeklyInsight returns an LLM-written reflection over the user's
// last seven days of entries.
func (ic *InsightController) GetWeeklyInsight(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user id"})
		return
	}

	reflection, err := ic.insight.WeeklyReflection(c.Request.Context(), uid.(string))
	if err != nil {
		config.Logger.Errorw("weekly insight failed", "uid", uid, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insight"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reflection": reflection})
}
