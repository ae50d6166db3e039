package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studyshelf/backend/internal/config"
	"github.com/studyshelf/backend/internal/database"
	"github.com/studyshelf/backend/internal/logger"
	"github.com/studyshelf/backend/internal/server"
	"go.uber.org/zap"
)

// @title Study shelf course API
// @version 1.0
// @description Stores courses and their lessons for the study shelf client
// @host localhost:3001
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting study shelf course service",
		zap.String("driver", cfg.Database.Driver),
	)

	// Connect to database and run migrations
	db, err := database.Open(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	srv := server.NewHTTPServer(cfg, server.NewRouter(db, cfg, logger.Logger))

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
