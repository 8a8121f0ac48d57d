package config

import (
	"os"
	"strconv"

	"spatialviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Figure FigureConfig
	Server ServerConfig
	Data   DataConfig
}

// FigureConfig holds figure geometry settings
type FigureConfig struct {
	Width  int
	Height int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data source settings
type DataConfig struct {
	// ResultsFile is an optional .xlsx of precomputed results; empty
	// means the synthetic testkit dataset is used
	ResultsFile string
	// ClusterKey is the obs column holding cluster labels
	ClusterKey string
	// OutputDir receives rendered figures and reports
	OutputDir string
	// Seed drives the synthetic dataset generator
	Seed int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Figure: FigureConfig{
			Width:  getEnvIntOrDefault("FIGURE_WIDTH", 1280),
			Height: getEnvIntOrDefault("FIGURE_HEIGHT", 420),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			ResultsFile: getEnvOrDefault("RESULTS_FILE", ""),
			ClusterKey:  getEnvOrDefault("CLUSTER_KEY", "leiden"),
			OutputDir:   getEnvOrDefault("OUTPUT_DIR", "./out"),
			Seed:        int64(getEnvIntOrDefault("DATASET_SEED", 42)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Figure.Width <= 0 || config.Figure.Height <= 0 {
		return errors.ConfigInvalid("figure dimensions must be positive")
	}
	if config.Data.ClusterKey == "" {
		return errors.ConfigInvalid("cluster key is required")
	}
	if config.Data.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
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
