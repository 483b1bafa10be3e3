package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Backend names accepted by DESKTOP_BACKEND.
const (
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

var (
	ErrInvalidScreen  = errors.New("screen dimensions must be positive")
	ErrInvalidFPS     = errors.New("fps must be between 1 and 240")
	ErrInvalidCell    = errors.New("cell dimensions must be positive")
	ErrInvalidBackend = errors.New("unknown backend")
)

// Config holds all application configuration.
type Config struct {
	Screen    ScreenConfig
	Backend   BackendConfig
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ScreenConfig holds the logical screen and frame pacing.
type ScreenConfig struct {
	Width      int `envconfig:"DESKTOP_WIDTH" default:"800"`
	Height     int `envconfig:"DESKTOP_HEIGHT" default:"600"`
	FPS        int `envconfig:"DESKTOP_FPS" default:"60"`
	CellWidth  int `envconfig:"DESKTOP_CELL_WIDTH" default:"8"`
	CellHeight int `envconfig:"DESKTOP_CELL_HEIGHT" default:"16"`
}

// BackendConfig selects how frames are presented.
type BackendConfig struct {
	Kind     string `envconfig:"DESKTOP_BACKEND" default:"terminal"`
	Snapshot string `envconfig:"DESKTOP_SNAPSHOT" default:"desktop.png"`
	Frames   int    `envconfig:"DESKTOP_FRAMES" default:"1"`
}

// ServerConfig holds the inspection API configuration.
type ServerConfig struct {
	Enabled bool   `envconfig:"HTTP_ENABLED" default:"false"`
	Host    string `envconfig:"HTTP_HOST" default:"127.0.0.1"`
	Port    string `envconfig:"HTTP_PORT" default:"8070"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE" default:""`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Addr returns the host:port the API listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
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
		Screen: ScreenConfig{
			Width:      800,
			Height:     600,
			FPS:        60,
			CellWidth:  8,
			CellHeight: 16,
		},
		Backend: BackendConfig{
			Kind:     BackendTerminal,
			Snapshot: "desktop.png",
			Frames:   1,
		},
		Server: ServerConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    "8070",
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
	}
}

// Validate checks the values a running desktop depends on.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidScreen, c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.FPS < 1 || c.Screen.FPS > 240 {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, c.Screen.FPS)
	}
	if c.Screen.CellWidth <= 0 || c.Screen.CellHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCell, c.Screen.CellWidth, c.Screen.CellHeight)
	}
	switch c.Backend.Kind {
	case BackendTerminal, BackendHeadless:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend.Kind)
	}
	return nil
}
