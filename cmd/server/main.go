package main

import (
	"context"
	"log"
	"time"

	"crm-backend/internal/api/routes"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/logger"
	"crm-backend/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "crm-backend/docs" // This is needed for swag
)

//	@title			CRM Backend API
//	@version		1.0
//	@description	Multi-tenant CRM API: companies, contacts, deal pipeline, tasks, dashboard and team invitations.

//	@host		localhost:7008
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	deps := routes.Dependencies{DB: db, Config: cfg}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis is not reachable, change signals and invitation delivery will fail until it is")
		}
		cancel()

		queue := tasks.NewClient(tasks.RedisOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer queue.Close()

		deps.Redis = rdb
		deps.Dispatcher = tasks.NewDispatcher(queue)
	} else {
		logrus.Warn("REDIS_ADDR is empty, change signals are dropped and invitations are not delivered")
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router, err := routes.SetupRoutes(deps)
	if err != nil {
		logrus.Fatal("Failed to set up routes:", err)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7008"
	}

	logrus.Infof("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}
