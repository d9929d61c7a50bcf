// ABOUTME: Main entry point for the Kindle Press API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kindle-press-api/api"
	"kindle-press-api/core/article"
	"kindle-press-api/core/delivery"
	"kindle-press-api/core/images"
	"kindle-press-api/core/interfaces"
	"kindle-press-api/infrastructure/cache/memory"
	"kindle-press-api/infrastructure/cache/redis"
	"kindle-press-api/infrastructure/cache/sqlite"
	"kindle-press-api/infrastructure/epub"
	stdhttp "kindle-press-api/infrastructure/http/standard"
	logruslogger "kindle-press-api/infrastructure/logger/logrus"
	"kindle-press-api/infrastructure/mail/smtp"
	"kindle-press-api/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logruslogger.NewLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting Kindle Press API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
	})

	// Create cache
	cache := newCache(cfg, logger)

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(
		time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxRetries,
	)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create services
	articleService := article.NewService(deps, article.Config{
		ContentSelectors: config.DefaultContentSelectors(),
		Images: images.FetcherConfig{
			MaxWidth:  cfg.Images.MaxWidth,
			MaxHeight: cfg.Images.MaxHeight,
			Quality:   cfg.Images.Quality,
		},
		Concurrency: cfg.Images.Concurrency,
		CacheTTL:    time.Duration(cfg.Cache.ArticleTTL) * time.Second,
	})

	packager := epub.NewBuilder(cfg.Delivery.OutputDir, logger)
	sender := smtp.NewSender(smtp.Config{
		Host:     cfg.Delivery.SMTPHost,
		Port:     cfg.Delivery.SMTPPort,
		Username: cfg.Delivery.SMTPUser,
		Password: cfg.Delivery.SMTPPassword,
		From:     cfg.Delivery.FromEmail,
	}, logger)
	deliveryService := delivery.NewService(articleService, packager, sender, logger)

	// Assemble the HTTP handler with middleware
	handler := api.NewHandler(api.Config{
		Logger:     logger,
		RateLimit:  100, // 100 requests per minute
		RateWindow: time.Minute,
	}, articleService, deliveryService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
		// Article processing fetches remote pages and images, so write
		// timeouts run longer than usual.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured cache backend, falling back to memory
// when an external backend cannot be reached.
func newCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return redisCache
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache()
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLitePath,
		})
		return sqliteCache
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache()
	}
}
