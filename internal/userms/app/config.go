package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string // Optional: issuer claim for tokens (default: userms)
	JWTSecret string // Optional: HS256 signing secret; generated per process when empty

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 1h)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)

	DatabaseFile  string // Optional: path to SQLite database file (default: ./users.db)
	AdminEmail    string // Optional: seed admin account email on an empty database
	AdminPassword string // Optional: seed admin password; generated and logged when empty

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:    getEnvOrDefault("USERMS_ISSUER", "userms"),
		JWTSecret: os.Getenv("USERMS_JWT_SECRET"), // Optional: generated when empty

		AccessTokenTTL:  getEnvDurationOrDefault("USERMS_ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getEnvDurationOrDefault("USERMS_REFRESH_TOKEN_TTL", 168*time.Hour),

		DatabaseFile:  getEnvOrDefault("USERMS_DATABASE_FILE", "users.db"),
		AdminEmail:    os.Getenv("USERMS_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("USERMS_ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	return defaultValue
}
