package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP server
	Server ServerConfig

	// Database Configuration
	Database DatabaseConfig

	// Redis Configuration (task queue)
	Redis RedisConfig

	// Logging Configuration
	Logging LoggingConfig

	// Maintenance holds background cleanup settings
	Maintenance MaintenanceConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr       string // listen address (host:port)
	CORSOrigin string // allowed browser origin for the SPA front-end
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address string // Redis address (host:port)
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// MaintenanceConfig holds background cleanup settings
type MaintenanceConfig struct {
	// PurgeSchedule is a cron expression for the expired reset-token
	// purge. Empty disables scheduled purging.
	PurgeSchedule string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:4200"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "courtly.sqlite"
	}

	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	// Default: purge expired reset tokens nightly at 03:00
	purgeSchedule := os.Getenv("PURGE_SCHEDULE")
	if purgeSchedule == "" {
		purgeSchedule = "0 3 * * *"
	}

	return &Config{
		Server: ServerConfig{
			Addr:       addr,
			CORSOrigin: corsOrigin,
		},
		Database: DatabaseConfig{
			URL: dbURL,
		},
		Redis: RedisConfig{
			Address: redisAddr,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
		Maintenance: MaintenanceConfig{
			PurgeSchedule: purgeSchedule,
		},
	}, nil
}
