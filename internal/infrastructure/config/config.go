package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
	Catalog   CatalogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	AllowedOrigins  []string      `envconfig:"CORS_ORIGINS" default:"*"`
	Gzip            bool          `envconfig:"GZIP_ENABLED" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds window manager knobs.
type DesktopConfig struct {
	Theme             string        `envconfig:"DESK_THEME" default:"light"`
	StackBase         int64         `envconfig:"DESK_STACK_BASE" default:"1000"`
	WindowWidth       int           `envconfig:"DESK_WINDOW_WIDTH" default:"800"`
	WindowHeight      int           `envconfig:"DESK_WINDOW_HEIGHT" default:"600"`
	SpawnX            int           `envconfig:"DESK_SPAWN_X" default:"100"`
	SpawnY            int           `envconfig:"DESK_SPAWN_Y" default:"100"`
	SpawnWidth        int           `envconfig:"DESK_SPAWN_WIDTH" default:"200"`
	SpawnHeight       int           `envconfig:"DESK_SPAWN_HEIGHT" default:"100"`
	MinWidth          int           `envconfig:"DESK_MIN_WIDTH" default:"200"`
	MinHeight         int           `envconfig:"DESK_MIN_HEIGHT" default:"150"`
	ViewportWidth     int           `envconfig:"DESK_VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight    int           `envconfig:"DESK_VIEWPORT_HEIGHT" default:"1080"`
	TaskbarHeight     int           `envconfig:"DESK_TASKBAR_HEIGHT" default:"64"`
	ClockInterval     time.Duration `envconfig:"DESK_CLOCK_INTERVAL" default:"1m"`
	ClockFormat       string        `envconfig:"DESK_CLOCK_FORMAT" default:"15:04"`
	NotificationLimit int           `envconfig:"DESK_NOTIFICATION_LIMIT" default:"50"`
}

// CatalogConfig holds app catalog configuration.
type CatalogConfig struct {
	Dir string `envconfig:"CATALOG_DIR" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			AllowedOrigins:  []string{"*"},
			Gzip:            true,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			Theme:             "light",
			StackBase:         1000,
			WindowWidth:       800,
			WindowHeight:      600,
			SpawnX:            100,
			SpawnY:            100,
			SpawnWidth:        200,
			SpawnHeight:       100,
			MinWidth:          200,
			MinHeight:         150,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
			TaskbarHeight:     64,
			ClockInterval:     time.Minute,
			ClockFormat:       "15:04",
			NotificationLimit: 50,
		},
	}
}

// Validate rejects settings the desktop cannot run with.
func (c *Config) Validate() error {
	d := c.Desktop
	var errs []error
	if d.Theme != "light" && d.Theme != "dark" {
		errs = append(errs, fmt.Errorf("DESK_THEME must be light or dark, got %q", d.Theme))
	}
	if d.WindowWidth <= 0 || d.WindowHeight <= 0 {
		errs = append(errs, errors.New("default window size must be positive"))
	}
	if d.SpawnWidth < 0 || d.SpawnHeight < 0 {
		errs = append(errs, errors.New("spawn range must not be negative"))
	}
	if d.MinWidth < 0 || d.MinHeight < 0 {
		errs = append(errs, errors.New("minimum window size must not be negative"))
	}
	if d.ViewportWidth <= 0 || d.ViewportHeight <= d.TaskbarHeight || d.TaskbarHeight < 0 {
		errs = append(errs, errors.New("viewport must leave room above the taskbar"))
	}
	if d.ClockInterval <= 0 {
		errs = append(errs, errors.New("DESK_CLOCK_INTERVAL must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
