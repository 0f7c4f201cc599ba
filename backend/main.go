package main

import (
	"context"
	"log"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/routes"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Redis is optional; without it the leaderboard is disabled.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Printf("Redis unavailable, leaderboard disabled: %v", err)
			rdb = nil
		}
	}
	leaderboard := services.NewLeaderboardService(rdb)

	// Gemini is optional; without a key the AI endpoint reports as unconfigured.
	var recommender *services.Recommender
	if cfg.GeminiAPIKey != "" {
		recommender, err = services.NewRecommender(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			logger.Printf("Gemini client init failed, AI recommendations disabled: %v", err)
		}
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, leaderboard, recommender, logger)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
