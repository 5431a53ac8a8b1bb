package config

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run and errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Serial.Baud <= 0 {
		errs = append(errs, "serial.baud must be positive")
	}
	if cfg.Demo.Interval <= 0 {
		errs = append(errs, "demo.interval must be positive")
	}
	if cfg.Log.Capacity <= 0 {
		errs = append(errs, "log.capacity must be positive")
	}
	if cfg.Timeline.Points <= 0 {
		errs = append(errs, "timeline.points must be positive")
	}

	switch cfg.UI.Theme {
	case "default", "dark", "light":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme %q must be \"default\", \"dark\", or \"light\"", cfg.UI.Theme))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
