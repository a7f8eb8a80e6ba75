package config

import (
	"os"
	"strconv"
	"time"

	"gohoras/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Uploads  UploadConfig
	Ops      OpsConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AuthConfig holds token issuance settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// UploadConfig holds photo upload settings
type UploadConfig struct {
	Dir         string
	MaxFileSize int64
	MaxPhotos   int
}

// OpsConfig holds the operational sidecar settings (health + pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.ConfigInvalid("JWT_SECRET is required")
	}

	return &Config{
		Database: DatabaseConfig{URL: dbURL},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "5000"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Auth: AuthConfig{
			JWTSecret: secret,
			TokenTTL:  getEnvDurationOrDefault("TOKEN_TTL", 30*24*time.Hour),
		},
		Uploads: UploadConfig{
			Dir:         getEnvOrDefault("UPLOADS_DIR", "uploads"),
			MaxFileSize: int64(getEnvIntOrDefault("MAX_FILE_SIZE", 10*1024*1024)),
			MaxPhotos:   getEnvIntOrDefault("MAX_PHOTOS_PER_ENTRY", 10),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
