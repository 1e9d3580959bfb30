package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds engine tunables. Zero-valued fields are filled with the
// defaults from Default when loaded from disk.
type Config struct {
	StartYear        int     `json:"start_year"`
	YearsPerSecond   float64 `json:"years_per_second"`
	DefaultSpeed     float64 `json:"default_speed"`
	MinSpeed         float64 `json:"min_speed"`
	MaxSpeed         float64 `json:"max_speed"`
	MaxStepSeconds   float64 `json:"max_step_seconds"`
	AutosaveInterval float64 `json:"autosave_interval"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		StartYear:        1800,
		YearsPerSecond:   0.1,
		DefaultSpeed:     1.0,
		MinSpeed:         0.25,
		MaxSpeed:         16.0,
		MaxStepSeconds:   0.25,
		AutosaveInterval: 300,
	}
}

// Load reads a JSON config file. A missing file is not an error: the
// defaults are returned. A malformed file is.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the clock cannot run on
func (c Config) Validate() error {
	if c.YearsPerSecond <= 0 {
		return fmt.Errorf("years_per_second must be positive, got %g", c.YearsPerSecond)
	}
	if c.MinSpeed <= 0 || c.MaxSpeed < c.MinSpeed {
		return fmt.Errorf("invalid speed bounds [%g, %g]", c.MinSpeed, c.MaxSpeed)
	}
	if c.DefaultSpeed < c.MinSpeed || c.DefaultSpeed > c.MaxSpeed {
		return fmt.Errorf("default_speed %g outside bounds [%g, %g]", c.DefaultSpeed, c.MinSpeed, c.MaxSpeed)
	}
	if c.MaxStepSeconds <= 0 {
		return fmt.Errorf("max_step_seconds must be positive, got %g", c.MaxStepSeconds)
	}
	return nil
}
