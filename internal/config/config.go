package config

import (
	"os"
	"strconv"
	"time"

	"trialintel/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Registry RegistryConfig
	Paths    PathConfig
	Prior    PriorConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// RegistryConfig holds ClinicalTrials.gov fetch settings
type RegistryConfig struct {
	BaseURL        string
	PageSize       int
	Sleep          time.Duration
	MaxStudies     int
	LastUpdateFrom string // YYYY-MM-DD
}

// PathConfig holds file system paths for inputs and published artifacts
type PathConfig struct {
	OutputDir     string
	PublicDir     string
	OverridesPath string
}

// PriorConfig holds the Beta prior for the enrichment aggregates
type PriorConfig struct {
	A float64
	B float64
}

// DatabaseConfig holds database connection settings. URL may be empty; the
// pipeline then skips persistence and works file-to-file.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Registry: RegistryConfig{
			BaseURL:        getEnvOrDefault("CTGOV_BASE_URL", "https://clinicaltrials.gov/api/v2/studies"),
			PageSize:       getEnvIntOrDefault("CTGOV_PAGE_SIZE", 100),
			Sleep:          time.Duration(getEnvFloatOrDefault("CTGOV_SLEEP_SECONDS", 1.2) * float64(time.Second)),
			MaxStudies:     getEnvIntOrDefault("CTGOV_MAX_STUDIES_TOTAL", 50000),
			LastUpdateFrom: getEnvOrDefault("CTGOV_LAST_UPDATE_FROM", "2015-01-01"),
		},
		Paths: PathConfig{
			OutputDir:     getEnvOrDefault("OUTPUT_DIR", "out"),
			PublicDir:     getEnvOrDefault("PUBLIC_DIR", "public"),
			OverridesPath: getEnvOrDefault("OVERRIDES_PATH", "overrides.csv"),
		},
		Prior: PriorConfig{
			A: getEnvFloatOrDefault("PRIOR_A", 1.0),
			B: getEnvFloatOrDefault("PRIOR_B", 1.0),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Registry.PageSize <= 0 || config.Registry.PageSize > 1000 {
		return errors.ConfigInvalid("CTGOV_PAGE_SIZE must be between 1 and 1000")
	}
	if config.Registry.MaxStudies <= 0 {
		return errors.ConfigInvalid("CTGOV_MAX_STUDIES_TOTAL must be positive")
	}
	if _, err := time.Parse("2006-01-02", config.Registry.LastUpdateFrom); err != nil {
		return errors.ConfigInvalid("CTGOV_LAST_UPDATE_FROM must be YYYY-MM-DD")
	}
	if config.Prior.A <= 0 || config.Prior.B <= 0 {
		return errors.ConfigInvalid("PRIOR_A and PRIOR_B must be positive")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
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
