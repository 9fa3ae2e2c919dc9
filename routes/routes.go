package routes

import (
	"MoodDiaryGo/controllers"
	"MoodDiaryGo/middleware"
	"MoodDiaryGo/services"
	"MoodDiaryGo/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, conversation *services.Conversation, stats *services.Stats, insight *services.Insight, moodStore store.MoodStore, gatewayToken string) {
	botController := controllers.NewBotController(conversation)
	statsController := controllers.NewStatsController(stats, moodStore)
	insightController := controllers.NewInsightController(insight)

	// Gateway-facing routes; the gateway authenticates with a shared
	// token and supplies the user id per request.
	api := r.Group("/api/v1")
	api.Use(middleware.GatewayAuthMiddleware(gatewayToken))
	api.Use(middleware.RequestLogger())
	{
		api.POST("/bot/events", botController.HandleEvent)
		api.GET("/stats", statsController.GetStats)
		api.GET("/stats/weekly", statsController.GetWeekly)
		api.GET("/history", statsController.GetHistory)
		api.DELETE("/history", statsController.ClearHistory)
		api.GET("/export", statsController.ExportData)
		api.GET("/insight/weekly", insightController.GetWeeklyInsight)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
