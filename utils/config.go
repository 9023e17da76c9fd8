package utils

import (
	"encoding/json"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds the configuration for the host shell. Values come from defaults,
// then the optional JSON file, then GOL_* environment variables.
type Config struct {
	CellSize            int           `json:"cell_size" env:"GOL_CELL_SIZE"`
	ViewportWidth       int           `json:"viewport_width" env:"GOL_VIEWPORT_WIDTH"`
	ViewportHeight      int           `json:"viewport_height" env:"GOL_VIEWPORT_HEIGHT"`
	FrameRate           time.Duration `json:"frame_rate" env:"GOL_FRAME_RATE"`
	RandomDensity       float64       `json:"random_density" env:"GOL_RANDOM_DENSITY"`
	Seed                int64         `json:"seed" env:"GOL_SEED"`
	ShowGridLines       bool          `json:"show_grid_lines" env:"GOL_SHOW_GRID_LINES"`
	UseMemoryPool       bool          `json:"use_memory_pool" env:"GOL_USE_MEMORY_POOL"`
	UseBoundedGrid      bool          `json:"use_bounded_grid" env:"GOL_USE_BOUNDED_GRID"`
	MaxGenerations      int           `json:"max_generations" env:"GOL_MAX_GENERATIONS"`
	AutoRestart         bool          `json:"auto_restart" env:"GOL_AUTO_RESTART"`
	StagnationThreshold int           `json:"stagnation_threshold" env:"GOL_STAGNATION_THRESHOLD"`
}

// DefaultConfig returns sensible defaults: 20px cells on a 1200x600 viewport, stepping every 100ms
func DefaultConfig() Config {
	return Config{
		CellSize:            20,
		ViewportWidth:       1200,
		ViewportHeight:      600,
		FrameRate:           100 * time.Millisecond,
		RandomDensity:       0.5,
		Seed:                0, // 0 seeds from the clock
		ShowGridLines:       true,
		UseMemoryPool:       true,
		UseBoundedGrid:      false,
		MaxGenerations:      0,
		AutoRestart:         true,
		StagnationThreshold: 5,
	}
}

// LoadConfig loads configuration from a JSON file, falling back to defaults when
// the file does not exist, then applies environment overrides and validates.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	default:
		if err = json.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	}

	if err = config.ApplyEnv(); err != nil {
		return config, err
	}
	if err = config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// ApplyEnv overrides fields whose GOL_* variable is set
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return errors.Wrap(err, "[ApplyEnv] failed to parse environment")
	}
	return nil
}

// Validate rejects settings the engine or the loop cannot run with
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return errors.Errorf("[Validate] cell_size must be positive, got %d", c.CellSize)
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return errors.Errorf("[Validate] viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	case c.ViewportWidth < c.CellSize || c.ViewportHeight < c.CellSize:
		return errors.Errorf("[Validate] viewport %dx%d is smaller than one %dpx cell",
			c.ViewportWidth, c.ViewportHeight, c.CellSize)
	case c.FrameRate <= 0:
		return errors.Errorf("[Validate] frame_rate must be positive, got %s", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.MaxGenerations < 0 || c.StagnationThreshold < 0:
		return errors.New("[Validate] max_generations and stagnation_threshold must not be negative")
	}
	return nil
}
