package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/todohub/pkg/tasklock"
)

type Config struct {
	Issuer   string // Required: identity provider base URL, also the expected iss claim
	Audience string // Required: API identifier expected in the aud claim

	DatabaseFile string // Optional: path to SQLite database file (default: ./todo.db)

	RedisAddr     string // Optional: Redis address; empty falls back to an in-process cache
	RedisPassword string // Optional
	RedisDB       int    // Optional (default: 0)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	JWKSRefreshInterval time.Duration // Provider key refresh interval (default: 15m)
}

// WorkerConfig drives the expiry worker binary. The worker talks to the API
// over HTTP with client-credentials, it never opens the database itself.
type WorkerConfig struct {
	APIBaseURL   string // Required: todohub API root
	TokenURL     string // Required: provider token endpoint
	ClientID     string // Required
	ClientSecret string // Required
	Audience     string // Optional: aud for minted tokens

	RedisAddr     string // Optional: Redis for the distributed task lock
	RedisPassword string // Optional
	RedisDB       int    // Optional (default: 0)

	Env       string        // Environment (default: dev)
	LogLevel  string        // Log level (default: info)
	LogFormat string        // Log format (default: json)
	Interval  time.Duration // Expiry check interval (default: 1m)
	LockTTL   time.Duration // Task lock TTL, bounds a crashed runner's hold (default: 10m)
}

func LoadConfig() Config {
	return Config{
		Issuer:              os.Getenv("TODO_ISSUER"),
		Audience:            os.Getenv("TODO_AUDIENCE"),
		DatabaseFile:        getEnvOrDefault("TODO_DATABASE_FILE", "todo.db"),
		RedisAddr:           os.Getenv("TODO_REDIS_ADDR"),
		RedisPassword:       os.Getenv("TODO_REDIS_PASSWORD"),
		RedisDB:             getEnvIntOrDefault("TODO_REDIS_DB", 0),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		JWKSRefreshInterval: getEnvDurationOrDefault("TODO_JWKS_REFRESH_INTERVAL", 15*time.Minute),
	}
}

func LoadWorkerConfig() WorkerConfig {
	return WorkerConfig{
		APIBaseURL:    getEnvOrDefault("TODO_API_BASE_URL", "http://localhost:8080"),
		TokenURL:      os.Getenv("TODO_TOKEN_URL"),
		ClientID:      os.Getenv("TODO_CLIENT_ID"),
		ClientSecret:  os.Getenv("TODO_CLIENT_SECRET"),
		Audience:      os.Getenv("TODO_AUDIENCE"),
		RedisAddr:     os.Getenv("TODO_REDIS_ADDR"),
		RedisPassword: os.Getenv("TODO_REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("TODO_REDIS_DB", 0),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
		Interval:      getEnvDurationOrDefault("TODO_WORKER_INTERVAL", time.Minute),
		LockTTL:       getEnvDurationOrDefault("TODO_WORKER_LOCK_TTL", tasklock.DefaultTTL),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
