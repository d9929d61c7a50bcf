// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, HTTP, images and delivery

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// HTTP contains outbound HTTP client configuration
	HTTP HTTPConfig

	// Images contains image normalization configuration
	Images ImageConfig

	// Delivery contains EPUB output and SMTP delivery configuration
	Delivery DeliveryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the cache database file for the sqlite backend
	SQLitePath string

	// ArticleTTL is the TTL for processed articles in seconds
	ArticleTTL int
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// HTTPConfig holds outbound HTTP client configuration
type HTTPConfig struct {
	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int

	// MaxRetries is the number of attempts for transport-level failures
	MaxRetries int

	// UserAgent is sent on every outbound request
	UserAgent string
}

// ImageConfig holds image normalization configuration
type ImageConfig struct {
	// MaxWidth is the maximum image width in pixels
	MaxWidth int

	// MaxHeight is the maximum image height in pixels
	MaxHeight int

	// Quality is the JPEG encoding quality (0-100)
	Quality int

	// Concurrency bounds the parallel image download workers
	Concurrency int
}

// DeliveryConfig holds EPUB output and SMTP delivery configuration
type DeliveryConfig struct {
	// OutputDir is where generated EPUB files are written
	OutputDir string

	// SMTPHost is the outbound mail server host
	SMTPHost string

	// SMTPPort is the outbound mail server port
	SMTPPort int

	// SMTPUser is the sender account username
	SMTPUser string

	// SMTPPassword is the sender account password
	SMTPPassword string

	// FromEmail is the sender address, which must be on the Kindle
	// approved-senders list
	FromEmail string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultContentSelectors is the ordered priority list of structural
// selectors used to locate the main content region of the original
// document. First match wins; no match falls back to the document body.
func DefaultContentSelectors() []string {
	return []string{
		`div[itemprop="articleBody"]`,
		".post-content",
		".entry-content",
		".article-content",
		".body",
		"article",
		".post",
		`[data-testid="post-content"]`,
		".substack-post-content",
		".post-body",
		".article-body",
		".content",
		".entry",
		".main-content",
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("CACHE_SQLITE_PATH", "cache.db"),
			ArticleTTL: getEnvAsIntOrDefault("ARTICLE_CACHE_TTL", 3600),
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: getEnvAsIntOrDefault("HTTP_TIMEOUT", 15),
			MaxRetries:     getEnvAsIntOrDefault("HTTP_MAX_RETRIES", 3),
			UserAgent:      getEnvOrDefault("HTTP_USER_AGENT", defaultUserAgent),
		},
		Images: ImageConfig{
			MaxWidth:    getEnvAsIntOrDefault("MAX_IMAGE_WIDTH", 800),
			MaxHeight:   getEnvAsIntOrDefault("MAX_IMAGE_HEIGHT", 1200),
			Quality:     getEnvAsIntOrDefault("IMAGE_QUALITY", 85),
			Concurrency: getEnvAsIntOrDefault("IMAGE_CONCURRENCY", 4),
		},
		Delivery: DeliveryConfig{
			OutputDir:    getEnvOrDefault("OUTPUT_DIR", "./epub_files"),
			SMTPHost:     getEnvOrDefault("SMTP_HOST", "smtp-mail.outlook.com"),
			SMTPPort:     getEnvAsIntOrDefault("SMTP_PORT", 587),
			SMTPUser:     getEnvOrDefault("SMTP_USER", ""),
			SMTPPassword: getEnvOrDefault("SMTP_PASSWORD", ""),
			FromEmail:    getEnvOrDefault("FROM_EMAIL", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" && c.Cache.Type != "sqlite" {
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLitePath == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.HTTP.TimeoutSeconds < 1 {
		return errors.New("http timeout must be at least 1 second")
	}

	if c.HTTP.MaxRetries < 1 {
		return errors.New("http max retries must be at least 1")
	}

	if c.Images.MaxWidth < 1 || c.Images.MaxHeight < 1 {
		return errors.New("image dimensions must be positive")
	}

	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		return errors.New("image quality must be between 1 and 100")
	}

	if c.Images.Concurrency < 1 {
		return errors.New("image concurrency must be at least 1")
	}

	return nil
}
