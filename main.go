package main

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/controllers"
	"MoodDiaryGo/middleware"
	"MoodDiaryGo/routes"
	"MoodDiaryGo/services"
	"MoodDiaryGo/store"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer config.Logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := config.InitDB(conf); err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}

	llmClient, err := services.NewLLMClient(conf.LLMAPIKey, conf.LLMAPIEndpoint, conf.LLMModel)
	if err != nil {
		log.Fatalf("failed to init LLM client: %v", err)
	}

	moodStore := store.NewGormStore(config.DB)
	checker := services.NewDailyChecker(moodStore)
	conversation := services.NewConversation(moodStore, checker, controllers.GatewayChannel{}, conf.SessionTTL())
	stats := services.NewStats(moodStore)
	insight := services.NewInsight(moodStore, llmClient)

	conversation.StartSweeper(time.Minute)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r)
	routes.RegisterRoutes(r, conversation, stats, insight, moodStore, conf.GatewayAuthToken)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		config.Logger.Infow("server starting", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Logger.Infow("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	conversation.Stop()
	config.Logger.Infow("server stopped")
}
