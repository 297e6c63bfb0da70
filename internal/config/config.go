package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultDataURL is the CSV export of the market spreadsheet.
const DefaultDataURL = "https://docs.google.com/spreadsheets/d/19lnPnb9urWtuC_X-0_n9Oi9KwhO9USZ-ljJKVsSvcrs/export?format=csv"

// Config holds all configuration for the market dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8050"`

	// Data source: http(s)://, gs://bucket/object, file:// or a plain path
	DataURL     string        `env:"DATA_URL,default=https://docs.google.com/spreadsheets/d/19lnPnb9urWtuC_X-0_n9Oi9KwhO9USZ-ljJKVsSvcrs/export?format=csv"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,default=30s"`
	MockupMode  bool          `env:"MOCKUP_MODE,default=false"`

	// Dashboard presentation
	ProfilePath string `env:"PROFILE_PATH"`
	ChartTheme  string `env:"CHART_THEME,default=westeros"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	return &cfg, nil
}
