package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFile loads config from an explicit file path, skipping discovery.
// The file must exist.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	override, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	merge(&cfg, override)

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// LoadFrom loads config using the given directory as the project root for file
// discovery. This is the testable entry point, Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./uartium.yaml (relative to project dir)
	local := filepath.Join(dir, "uartium.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/uartium/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "uartium", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

// loadFromFile reads and unmarshals a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge deep-merges override onto base. Scalar fields override when non-zero.
// Pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	// Serial
	if override.Serial.Port != "" {
		base.Serial.Port = override.Serial.Port
	}
	if override.Serial.Baud != 0 {
		base.Serial.Baud = override.Serial.Baud
	}

	// Demo
	if override.Demo.Interval != 0 {
		base.Demo.Interval = override.Demo.Interval
	}

	// Log
	if override.Log.Capacity != 0 {
		base.Log.Capacity = override.Log.Capacity
	}

	// Timeline
	if override.Timeline.Points != 0 {
		base.Timeline.Points = override.Timeline.Points
	}

	// Triggers
	if override.Triggers.File != "" {
		base.Triggers.File = override.Triggers.File
	}

	// UI, *bool overrides when non-nil
	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.ShowTimestamps != nil {
		base.UI.ShowTimestamps = override.UI.ShowTimestamps
	}
	if override.UI.FollowOnStart != nil {
		base.UI.FollowOnStart = override.UI.FollowOnStart
	}
}

// applyEnvOverrides applies UARTIUM_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("UARTIUM_PORT"); v != "" {
		cfg.Serial.Port = v
	}
	if v := os.Getenv("UARTIUM_BAUD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Serial.Baud = n
		}
	}
	if v := os.Getenv("UARTIUM_INTERVAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Demo.Interval = f
		}
	}
	if v := os.Getenv("UARTIUM_LOG_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Log.Capacity = n
		}
	}
	if v := os.Getenv("UARTIUM_TRIGGERS"); v != "" {
		cfg.Triggers.File = v
	}
	if v := os.Getenv("UARTIUM_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}
