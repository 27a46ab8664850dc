package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBDriver string // Optional: database driver (sqlite, postgres) (default: sqlite)
	DBDSN    string // Optional: database DSN (default: ./registry.db for sqlite)

	PepperFile    string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	SessionSecret string        // Required in prod: HMAC secret for session tokens (generated when empty)
	SessionIssuer string        // Optional: issuer claim for session tokens (default: eventdesk-registry)
	SessionTTL    time.Duration // Optional: session token lifetime (default: 12h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		DBDriver: getEnvOrDefault("REGISTRY_DB_DRIVER", "sqlite"),
		DBDSN:    os.Getenv("REGISTRY_DB_DSN"),

		PepperFile:    getEnvOrDefault("REGISTRY_PEPPER_FILE", "pepper"), // Default to ./pepper
		SessionSecret: os.Getenv("REGISTRY_SESSION_SECRET"),
		SessionIssuer: getEnvOrDefault("REGISTRY_SESSION_ISSUER", "eventdesk-registry"),
		SessionTTL:    getEnvDurationOrDefault("REGISTRY_SESSION_TTL", 12*time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.DBDSN == "" && cfg.DBDriver == "sqlite" {
		cfg.DBDSN = "registry.db"
	}

	return cfg
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
