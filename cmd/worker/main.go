package main

import (
	"log"

	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/logger"
	"crm-backend/internal/repository"
	"crm-backend/internal/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Setup(cfg.LogLevel)

	if cfg.RedisAddr == "" {
		logrus.Fatal("REDIS_ADDR is required to run the worker")
	}

	// Delivery checks each invitation is still pending before sending
	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	srv := tasks.NewServer(tasks.RedisOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, cfg.WorkerConcurrency)

	mux := asynq.NewServeMux()
	tasks.NewHandler(tasks.LogMailer{}, repository.NewInvitationRepository(db), cfg.AppBaseURL).RegisterHandlers(mux)

	logrus.WithField("concurrency", cfg.WorkerConcurrency).Info("Starting worker")

	// Run blocks until SIGINT or SIGTERM and drains in-flight tasks before returning
	if err := srv.Run(mux); err != nil {
		logrus.Fatal("Worker stopped with error:", err)
	}

	logrus.Info("Worker stopped")
}
