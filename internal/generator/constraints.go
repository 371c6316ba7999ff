package generator

import (
	"fmt"
	"time"
)

// Constraints parameterize a generator. Zero values mean "unset"; the
// mapper fills in defaults before a Column ever calls Generate.
type Constraints struct {
	MinInt    int64
	MaxInt    int64
	MinFloat  float64
	MaxFloat  float64
	MaxLength int // 0 = unbounded
	MinTime   time.Time
	MaxTime   time.Time
	Choices   []string
}

// ConfigurationError reports constraints that can never be satisfied.
// It is always a setup-time bug, never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// Validate checks that the constraints are satisfiable for the given kind.
func (c Constraints) Validate(kind Kind) error {
	if c.MaxLength < 0 {
		return &ConfigurationError{Field: "max_length", Reason: fmt.Sprintf("must not be negative, got %d", c.MaxLength)}
	}

	switch kind {
	case KindInteger:
		if c.MinInt > c.MaxInt {
			return &ConfigurationError{Field: "min_value", Reason: fmt.Sprintf("min %d exceeds max %d", c.MinInt, c.MaxInt)}
		}
	case KindFloat:
		if c.MinFloat > c.MaxFloat {
			return &ConfigurationError{Field: "min_value", Reason: fmt.Sprintf("min %g exceeds max %g", c.MinFloat, c.MaxFloat)}
		}
	case KindDateTime, KindDate:
		if !c.MinTime.IsZero() && !c.MaxTime.IsZero() && c.MinTime.After(c.MaxTime) {
			return &ConfigurationError{Field: "min_time", Reason: "min time is after max time"}
		}
	case KindChoice:
		if len(c.Choices) == 0 {
			return &ConfigurationError{Field: "choices", Reason: "choice kind requires at least one literal"}
		}
	}
	return nil
}
