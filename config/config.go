package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/pexels/pexels"
)

// APIKeyEnv is read when pexels.api_key is not set in the config file
const APIKeyEnv = "PEXELS_API_KEY"

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	// A .env file in the working directory may carry the API key
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	if err := v.BindEnv("pexels.api_key", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("error binding %s: %w", APIKeyEnv, err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("toml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pexels"))
		}

		// Check /etc
		v.AddConfigPath("/etc/pexels/")
	}

	// Read config file; defaults plus the environment are enough without one
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Pexels defaults
	v.SetDefault("pexels.base_url", "https://api.pexels.com")
	v.SetDefault("pexels.photo_path", "/v1")
	v.SetDefault("pexels.video_path", "/videos")
	v.SetDefault("pexels.search_path", "search")
	v.SetDefault("pexels.popular_path", "popular")
	v.SetDefault("pexels.curated_path", "curated")
	v.SetDefault("pexels.results_per_page", 15)
	v.SetDefault("pexels.default_page", 1)
	v.SetDefault("pexels.timeout", pexels.DefaultTimeout)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := cfg.Endpoints().Validate(); err != nil {
		return fmt.Errorf("pexels section: %w", err)
	}

	if cfg.Pexels.APIKey == "" || cfg.Pexels.APIKey == "your-api-key-here" {
		return fmt.Errorf("pexels.api_key (or %s) must be set to a valid API key", APIKeyEnv)
	}

	if cfg.Pexels.Timeout <= 0 {
		return fmt.Errorf("pexels.timeout must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// Endpoints returns the client endpoint settings
func (c *Config) Endpoints() pexels.Endpoints {
	return pexels.Endpoints{
		BaseURL:        c.Pexels.BaseURL,
		PhotoPath:      c.Pexels.PhotoPath,
		VideoPath:      c.Pexels.VideoPath,
		SearchPath:     c.Pexels.SearchPath,
		PopularPath:    c.Pexels.PopularPath,
		CuratedPath:    c.Pexels.CuratedPath,
		ResultsPerPage: c.Pexels.ResultsPerPage,
		DefaultPage:    c.Pexels.DefaultPage,
	}
}
