// Package config loads tool settings from an optional TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/envelopekit/envelope/pkg/model"
)

// Env variable names that override file values.
const (
	EnvTolerance      = "ENVELOPE_TOLERANCE"
	EnvAngleTolerance = "ENVELOPE_ANGLE_TOLERANCE"
)

// Config holds the settings shared by all commands.
type Config struct {
	// Tolerance is the distance within which geometry counts as touching,
	// in model units.
	Tolerance float64 `toml:"tolerance"`
	// AngleTolerance is the angle within which directions count as
	// parallel, in degrees.
	AngleTolerance float64 `toml:"angle_tolerance"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tolerance:      model.DefaultTolerance,
		AngleTolerance: model.DefaultAngleTolerance,
	}
}

// Load reads path if it exists, then applies environment overrides. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Tolerance <= 0 || cfg.AngleTolerance <= 0 {
		return cfg, fmt.Errorf("config: tolerances must be positive, got %g and %g",
			cfg.Tolerance, cfg.AngleTolerance)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvTolerance); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not a number: %w", EnvTolerance, v, err)
		}
		cfg.Tolerance = f
	}
	if v := os.Getenv(EnvAngleTolerance); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not a number: %w", EnvAngleTolerance, v, err)
		}
		cfg.AngleTolerance = f
	}
	return nil
}
