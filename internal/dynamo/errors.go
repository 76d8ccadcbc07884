package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration setup.
var (
	// ErrConfiguration indicates an invalid construction parameter. It is
	// only ever raised before a run starts, never mid-run.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrDimensionMismatch indicates mismatched state/scratch dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")
)

// ConfigError describes which construction parameter was rejected.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("dynamo: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// NewConfigError returns a *ConfigError for field.
func NewConfigError(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
