package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every entity construction failure.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration is matched by every rejected engine configuration.
	ErrConfiguration = errors.New("invalid configuration")
)

// ValidationError lists everything wrong with one entity.
type ValidationError struct {
	Entity   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(e.Problems, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConfigurationError is returned by EngineConfig.Validate.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
