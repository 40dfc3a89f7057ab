// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the viewer's process configuration.
type Config struct {
	// Dataset is a YAML fixture path. Empty selects the built-in dataset.
	Dataset string `env:"DATASET"`

	WindowWidth  int     `env:"WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int     `env:"WINDOW_HEIGHT" envDefault:"720"`
	TickRate     float64 `env:"TICK_RATE" envDefault:"60"`

	// Resize limits; 0 leaves a bound free.
	WindowMinWidth  int `env:"WINDOW_MIN_WIDTH" envDefault:"640"`
	WindowMinHeight int `env:"WINDOW_MIN_HEIGHT" envDefault:"360"`
	WindowMaxWidth  int `env:"WINDOW_MAX_WIDTH" envDefault:"0"`
	WindowMaxHeight int `env:"WINDOW_MAX_HEIGHT" envDefault:"0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
	Profiling bool   `env:"PROFILING" envDefault:"false"`

	// ExplorerAddress overrides the wallet address of the dataset's explorer.
	ExplorerAddress string `env:"EXPLORER_ADDRESS"`

	LODBasicDelay    time.Duration `env:"LOD_BASIC_DELAY" envDefault:"50ms"`
	LODCompleteDelay time.Duration `env:"LOD_COMPLETE_DELAY" envDefault:"500ms"`
	FocusDuration    time.Duration `env:"FOCUS_DURATION" envDefault:"3s"`
}

// Prefix is prepended to every variable name.
const Prefix = "COSMOS_"

// Load reads an optional .env file from the working directory and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// LoadFile reads the given dotenv files without overriding variables already set,
// then parses the environment.
func LoadFile(paths ...string) (*Config, error) {
	if err := godotenv.Load(paths...); err != nil {
		return nil, fmt.Errorf("load %v: %w", paths, err)
	}
	return Parse()
}

// Parse reads the configuration from environment variables only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges the parser cannot express.
func (c *Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if c.WindowMaxWidth > 0 && c.WindowMaxWidth < c.WindowMinWidth ||
		c.WindowMaxHeight > 0 && c.WindowMaxHeight < c.WindowMinHeight {
		return fmt.Errorf("config: window max size %dx%d is below min size %dx%d",
			c.WindowMaxWidth, c.WindowMaxHeight, c.WindowMinWidth, c.WindowMinHeight)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: %sTICK_RATE must be positive, got %v", Prefix, c.TickRate)
	}
	if c.LODBasicDelay < 0 || c.LODCompleteDelay < c.LODBasicDelay {
		return fmt.Errorf("config: lod delays must satisfy 0 <= basic <= complete, got %s and %s", c.LODBasicDelay, c.LODCompleteDelay)
	}
	if c.FocusDuration < 0 {
		return fmt.Errorf("config: %sFOCUS_DURATION must not be negative", Prefix)
	}
	return nil
}
