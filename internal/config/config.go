package config

import (
	"os"
	"strconv"
	"time"

	"rejectconsole/internal/errors"
)

// Backend modes supported by the console.
const (
	BackendModeAPI      = "api"
	BackendModePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Export    ExportConfig
	Reporting ReportingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// BackendConfig selects and configures the data backend.
type BackendConfig struct {
	Mode      string // "api" or "postgres"
	URL       string // base URL of the remote backend (api mode)
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// DatabaseConfig holds the local database settings (postgres mode).
type DatabaseConfig struct {
	URL      string
	SeedDemo bool
}

// AuthConfig holds console login settings.
type AuthConfig struct {
	Username   string
	Password   string
	SessionTTL time.Duration
}

// ExportConfig holds export delivery settings.
type ExportConfig struct {
	Dir string // optional directory sink for scheduled exports
}

// ReportingConfig holds daily report generation settings.
type ReportingConfig struct {
	Schedule     string // cron expression; empty disables the scheduler
	ThresholdPct float64
	CostPerPiece float64 // prices rejected pieces in the daily report rollup
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Backend: BackendConfig{
			Mode:      getEnvOrDefault("BACKEND_MODE", BackendModeAPI),
			URL:       getEnvOrDefault("BACKEND_URL", ""),
			APIKey:    getEnvOrDefault("BACKEND_API_KEY", ""),
			APISecret: getEnvOrDefault("BACKEND_API_SECRET", ""),
			Timeout:   getEnvDurationOrDefault("BACKEND_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:      getEnvOrDefault("DATABASE_URL", ""),
			SeedDemo: getEnvBoolOrDefault("SEED_DEMO_DATA", false),
		},
		Auth: AuthConfig{
			Username:   getEnvOrDefault("CONSOLE_USER", "quality"),
			Password:   getEnvOrDefault("CONSOLE_PASSWORD", ""),
			SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", ""),
		},
		Reporting: ReportingConfig{
			Schedule:     getEnvOrDefault("REPORT_SCHEDULE", ""),
			ThresholdPct: getEnvFloatOrDefault("THRESHOLD_PCT", 5.0),
			CostPerPiece: getEnvFloatOrDefault("REJECTION_COST_PER_PIECE", 0),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Backend.Mode {
	case BackendModeAPI:
		if config.Backend.URL == "" {
			return errors.ConfigInvalid("BACKEND_URL is required in api mode")
		}
	case BackendModePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required in postgres mode")
		}
	default:
		return errors.ConfigInvalid("BACKEND_MODE must be \"api\" or \"postgres\"")
	}
	if config.Auth.Password == "" {
		return errors.ConfigInvalid("CONSOLE_PASSWORD is required")
	}
	if config.Reporting.ThresholdPct <= 0 || config.Reporting.ThresholdPct >= 100 {
		return errors.ConfigInvalid("THRESHOLD_PCT must be between 0 and 100")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
