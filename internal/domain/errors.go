package domain

import "errors"

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrConfigNotFound is returned when the configuration file is missing
var ErrConfigNotFound = errors.New("configuration not found")
