package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Pexels  PexelsConfig  `mapstructure:"pexels"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PexelsConfig holds the API endpoints, paging defaults and API key
type PexelsConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	PhotoPath      string        `mapstructure:"photo_path"`
	VideoPath      string        `mapstructure:"video_path"`
	SearchPath     string        `mapstructure:"search_path"`
	PopularPath    string        `mapstructure:"popular_path"`
	CuratedPath    string        `mapstructure:"curated_path"`
	ResultsPerPage int           `mapstructure:"results_per_page"`
	DefaultPage    int           `mapstructure:"default_page"`
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
