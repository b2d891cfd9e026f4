package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL      string
	IsProduction     bool
	MigrationsPath   string
	MaxCommitRetries int
	DefaultPageSize  int
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables win over .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("MAX_COMMIT_RETRIES", 3)
	viper.SetDefault("DEFAULT_PAGE_SIZE", 20)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:   viper.GetString("MIGRATIONS_PATH"),
		MaxCommitRetries: viper.GetInt("MAX_COMMIT_RETRIES"),
		DefaultPageSize:  viper.GetInt("DEFAULT_PAGE_SIZE"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	if cfg.MaxCommitRetries <= 0 {
		cfg.MaxCommitRetries = 3
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 20
	}

	return cfg, nil
}
