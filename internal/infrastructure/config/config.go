package config

import (
	"fmt"
	"strings"
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
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	MaxConnections  int           `envconfig:"MAX_CONNECTIONS" default:"1024"`
	Compress        bool          `envconfig:"HTTP_COMPRESS" default:"true"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string        `envconfig:"LOG_LEVEL" default:"info"`
	Development bool          `envconfig:"LOG_DEV" default:"false"`
	SlowSpan    time.Duration `envconfig:"LOG_SLOW_SPAN" default:"250ms"`
}

// RateLimitConfig holds rate limiting configuration.
// Drag streams send a command per pointer-move, so the defaults are generous.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"200"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"400"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds per-desktop limits.
type DesktopConfig struct {
	ZIndexBase    int64         `envconfig:"DESKTOP_ZINDEX_BASE" default:"1000"`
	MaxDesktops   int           `envconfig:"DESKTOP_MAX" default:"256"`
	IdleTTL       time.Duration `envconfig:"DESKTOP_IDLE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"DESKTOP_SWEEP_INTERVAL" default:"1m"`
}

// CatalogConfig holds window preset configuration.
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

// Validate checks values envconfig cannot express as types.
func (c *Config) Validate() error {
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("MAX_CONNECTIONS must not be negative, got %d", c.Server.MaxConnections)
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entries must be * or start with http:// or https://, got %q", origin)
		}
	}
	if c.Desktop.MaxDesktops < 1 {
		return fmt.Errorf("DESKTOP_MAX must be positive, got %d", c.Desktop.MaxDesktops)
	}
	if c.Desktop.IdleTTL < 0 {
		return fmt.Errorf("DESKTOP_IDLE_TTL must not be negative, got %s", c.Desktop.IdleTTL)
	}
	if c.Desktop.SweepInterval <= 0 {
		return fmt.Errorf("DESKTOP_SWEEP_INTERVAL must be positive, got %s", c.Desktop.SweepInterval)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			MaxConnections:  1024,
			Compress:        true,
			CORSOrigins:     []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
			SlowSpan:    250 * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 200,
			Burst:             400,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			ZIndexBase:    1000,
			MaxDesktops:   256,
			IdleTTL:       30 * time.Minute,
			SweepInterval: time.Minute,
		},
	}
}
