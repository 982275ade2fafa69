package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the fermentation monitor.
type Config struct {
	// FirebaseAPIKey is the database web API key. It authenticates the
	// app against the identity endpoint, not the user, and is treated as
	// a deployment-time constant rather than a secret.
	FirebaseAPIKey string `mapstructure:"firebase_api_key"`

	// Base URLs for the remote endpoints (configurable for testing)
	IdentityBaseURL string `mapstructure:"identity_base_url"`
	DatabaseBaseURL string `mapstructure:"database_base_url"`

	// DataDir holds the credential store, preferences, and log file.
	DataDir string `mapstructure:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
//
// Expected environment variables:
//   - FIREBASE_API_KEY
//   - IDENTITY_BASE_URL (optional, defaults to production)
//   - DATABASE_BASE_URL (optional, defaults to production)
//   - WORTMONITOR_DATA_DIR (optional)
//   - WORTMONITOR_LOG_LEVEL (optional, defaults to info)
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("identity_base_url", "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword")
	v.SetDefault("database_base_url", "https://beer-wort-parameter-monitoring-default-rtdb.europe-west1.firebasedatabase.app")
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log_level", "info")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.wortmonitor")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("firebase_api_key", "FIREBASE_API_KEY")
	v.BindEnv("identity_base_url", "IDENTITY_BASE_URL")
	v.BindEnv("database_base_url", "DATABASE_BASE_URL")
	v.BindEnv("data_dir", "WORTMONITOR_DATA_DIR")
	v.BindEnv("log_level", "WORTMONITOR_LOG_LEVEL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.FirebaseAPIKey == "" {
		return nil, fmt.Errorf("missing required configuration: FIREBASE_API_KEY")
	}

	return config, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wortmonitor"
	}
	return filepath.Join(home, ".local", "share", "wortmonitor")
}
