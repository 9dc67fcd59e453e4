package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Backend API
	APIBaseURL string

	// Identity provider
	AuthBaseURL string

	// Server
	ServerPort string

	// Interaction tuning
	SearchDebounce  time.Duration // Delay before a typed query goes out (default: 500ms)
	ToastDuration   time.Duration // How long a notification stays visible (default: 3s)
	BannerRotate    time.Duration // Banner carousel rotation interval (default: 5s)
	TrendingRefresh time.Duration // Home row refetch interval (default: 15m)
	CacheTTL        time.Duration // TTL for cached non-user-scoped GETs (default: 5m)

	// Paths
	DatabaseFile string // $CONFIG_DIR/flickd.db (session store)

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 500)
	viper.SetDefault("TOAST_DURATION_MS", 3000)
	viper.SetDefault("BANNER_ROTATE_SECONDS", 5)
	viper.SetDefault("TRENDING_REFRESH_MINUTES", 15)
	viper.SetDefault("CACHE_TTL_MINUTES", 5)

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "flickd")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		APIBaseURL:  viper.GetString("API_BASE_URL"),
		AuthBaseURL: viper.GetString("AUTH_BASE_URL"),

		ServerPort: viper.GetString("SERVER_PORT"),

		SearchDebounce:  time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		ToastDuration:   time.Duration(viper.GetInt("TOAST_DURATION_MS")) * time.Millisecond,
		BannerRotate:    time.Duration(viper.GetInt("BANNER_ROTATE_SECONDS")) * time.Second,
		TrendingRefresh: time.Duration(viper.GetInt("TRENDING_REFRESH_MINUTES")) * time.Minute,
		CacheTTL:        time.Duration(viper.GetInt("CACHE_TTL_MINUTES")) * time.Minute,

		DatabaseFile: filepath.Join(configDir, "flickd.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}
	if config.AuthBaseURL == "" {
		return nil, fmt.Errorf("AUTH_BASE_URL is required")
	}

	return config, nil
}
