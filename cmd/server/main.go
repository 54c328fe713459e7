package main

import (
	"context"                          // context package is needed for Redis operations
	"net/http"                         // HTTP server
	"os"                               // OS signals
	"os/signal"                        // Signal notification
	"stock_simulator/internal/account" // Registration and login
	"stock_simulator/internal/api"     // Custom package for API handlers
	"stock_simulator/internal/config"  // Custom package for configuration
	"stock_simulator/internal/db"      // Database connection and migration
	"stock_simulator/internal/quote"   // Market price providers
	"stock_simulator/internal/session" // Session store
	"stock_simulator/internal/trading" // Ledger operations
	"syscall"                          // Signal numbers
	"time"                             // Shutdown timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err) // API_KEY and JWT_SECRET are required
	}

	// Connect to the database and bring the schema up to date
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	quotes, err := quote.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to set up quote provider: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		DB:       conn,
		Redis:    redisClient,
		Accounts: account.New(conn, cfg.InitialCash),
		Trading:  trading.New(conn, quotes),
		Sessions: session.NewStore(redisClient, cfg.JWTSecret, cfg.SessionTTL),
		Secure:   cfg.IsProd,
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	server := &http.Server{Addr: ":" + cfg.AppPort, Handler: r}
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShut()
	if err := server.Shutdown(ctxShut); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logrus.Errorf("close redis: %v", err)
	}
	logrus.Info("Shutdown complete")
}
