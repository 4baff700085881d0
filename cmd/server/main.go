package main

import (
	"context" // context package is needed for Redis operations

	"finance_tracker/internal/api"        // Custom package for API handlers
	"finance_tracker/internal/config"     // Custom package for configuration
	"finance_tracker/internal/db"         // Database connection
	"finance_tracker/internal/repository" // Owner-scoped storage
	"finance_tracker/internal/service"    // Business rules

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	config.SetupLogger(cfg)    // Setup logger

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client; without REDIS_ADDR reports are not cached and tokens are not blacklisted
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
	} else {
		logrus.Warn("REDIS_ADDR not set, caching and token blacklist disabled")
	}

	repos := repository.New(conn)
	svc := service.New(repos, redisClient, service.Options{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		CacheTTL:        cfg.CacheTTL,
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(cfg, svc, repos.Users)
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{"port": cfg.AppPort, "driver": cfg.DBDriver}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
