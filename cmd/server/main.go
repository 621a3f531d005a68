package main

import (
	"context"                  // context package is needed for Redis operations and shutdown
	"errors"                   // Error comparison
	"net/http"                 // HTTP server
	"os"                       // Signals
	"os/signal"                // Signal notification
	"syscall"                  // SIGTERM
	"time"                     // Shutdown timeout
	"todo_app/internal/api"    // Custom package for API handlers
	"todo_app/internal/config" // Custom package for configuration
	"todo_app/internal/db"     // Custom package for persistence
	"todo_app/internal/notify" // Custom package for email notifications

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database and make sure the schema exists
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client when configured; without it the dashboard reads straight from the DB
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Setup mail delivery
	mailer, err := notify.NewSMTPMailer(cfg.Mail)
	if err != nil {
		logrus.Fatalf("failed to set up mailer: %v", err)
	}
	notifier := notify.NewNotifier(mailer, notify.DefaultSendTimeout)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.NewRouter(api.Dependencies{
		Store:         db.NewStore(gdb),
		Redis:         redisClient,
		Notifier:      notifier,
		SessionSecret: cfg.SessionSecret,
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for SIGINT or SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown failed: %v", err)
	}

	// Give in-flight notifications a chance to go out
	notifier.Wait()
	logrus.Info("Server stopped")
}
