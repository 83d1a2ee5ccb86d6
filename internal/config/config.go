package config

import (
	"os"
	"strconv"

	"climatelab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Paths    PathConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. An empty URL disables
// the Postgres-backed dataset repository; file-based CSV still works.
type DatabaseConfig struct {
	URL string
}

// PathConfig holds file system paths
type PathConfig struct {
	DataDir string
}

// AnalysisConfig holds default thresholds for the derivations
type AnalysisConfig struct {
	IdealLower      float64
	IdealUpper      float64
	ColdMax         float64
	HotMin          float64
	HardinessWindow int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Paths: PathConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Analysis: AnalysisConfig{
			IdealLower:      getEnvFloat("IDEAL_LOWER", 60),
			IdealUpper:      getEnvFloat("IDEAL_UPPER", 75),
			ColdMax:         getEnvFloat("COLD_MAX", 32),
			HotMin:          getEnvFloat("HOT_MIN", 85),
			HardinessWindow: getEnvInt("HARDINESS_WINDOW", 30),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if cfg.Analysis.IdealLower > cfg.Analysis.IdealUpper {
		return errors.ConfigInvalid("IDEAL_LOWER must not exceed IDEAL_UPPER")
	}
	if cfg.Analysis.HardinessWindow <= 0 {
		return errors.ConfigInvalid("HARDINESS_WINDOW must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
