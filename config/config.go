package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Empty allows any origin.
	CORSOrigins []string

	YouTubeAPIKey    string
	YouTubeAPIBase   string
	YouTubeRateLimit float64

	StorageBackend string
	SQLitePath     string
	MongoURI       string
	MongoDB        string
	RedisURL       string
	PostgresURL    string

	// Empty disables activity events.
	NATSUrl string

	DefaultTheme    string
	LogLevel        string
	LogPretty       bool
	ShutdownTimeout time.Duration
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		CORSOrigins:      getListEnv("CORS_ORIGINS"),
		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		YouTubeAPIBase:   getEnv("YOUTUBE_API_BASE", "https://www.googleapis.com/youtube/v3"),
		YouTubeRateLimit: getFloatEnv("YOUTUBE_RATE_LIMIT", 0),
		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", "memory")),
		SQLitePath:       getEnv("SQLITE_PATH", "videobrowse.db"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "videobrowsedb"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		PostgresURL:      getEnv("POSTGRES_URL", ""),
		NATSUrl:          getEnv("NATS_URL", ""),
		DefaultTheme:     getEnv("DEFAULT_THEME", "dark"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogPretty:        getBoolEnv("LOG_PRETTY", false),
		ShutdownTimeout:  getDurationEnv("SHUTDOWN_TIMEOUT", "30s"),
	}

	if cfg.YouTubeAPIKey == "" {
		return nil, errors.New("YOUTUBE_API_KEY is required")
	}
	switch cfg.StorageBackend {
	case "memory", "sqlite", "mongo", "redis", "postgres":
	default:
		return nil, errors.New("STORAGE_BACKEND must be one of memory, sqlite, mongo, redis, postgres")
	}
	if cfg.StorageBackend == "postgres" && cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is required for the postgres backend")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getDurationEnv(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
