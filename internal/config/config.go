package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	Redis        RedisConfig
	Store        StoreConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// AuthConfig defines API key authentication parameters.
type AuthConfig struct {
	// APIKey is an extra key accepted on top of the built-in allow-list.
	APIKey string
}

// RateLimitConfig tunes the sliding-window limiter.
type RateLimitConfig struct {
	MaxRequests   int
	WindowSeconds int
	// Backend selects the limiter store: "memory" or "redis".
	Backend string
}

// RedisConfig holds Redis connection values for the redis limiter backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StoreConfig tunes the in-memory data store.
type StoreConfig struct {
	LatencyMinMillis int
	LatencyMaxMillis int
	Seed             bool
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds the mock board-update integration settings.
type NotificationConfig struct {
	WebhookURL string
	BoardID    string
	ItemID     string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "user-directory-service"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("APP_PORT", "3000"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Auth: AuthConfig{
			APIKey: os.Getenv("API_KEY"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   getEnvAsInt("RATE_LIMIT_MAX", 100),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 900),
			Backend:       getEnv("RATE_LIMIT_BACKEND", "memory"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Store: StoreConfig{
			LatencyMinMillis: getEnvAsInt("STORE_LATENCY_MIN_MS", 50),
			LatencyMaxMillis: getEnvAsInt("STORE_LATENCY_MAX_MS", 150),
			Seed:             getEnvAsBool("STORE_SEED", true),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			BoardID:    os.Getenv("NOTIFY_BOARD_ID"),
			ItemID:     os.Getenv("NOTIFY_ITEM_ID"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs in strict production mode.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// Window returns the rate limit window as a duration.
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
