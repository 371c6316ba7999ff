package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/generator"
)

// Column binds a constraint set to a value generator for one table
// attribute. It is built once during table setup and treated as
// immutable afterwards.
type Column struct {
	Name        string
	Kind        generator.Kind
	Nullable    bool
	Constraints generator.Constraints

	// nullRate is the probability of emitting NULL for a nullable column.
	// Default is 0: nullable columns stay populated unless a rate is
	// explicitly configured.
	nullRate float64
	gen      generator.Generator
}

// NewColumn validates the constraint set and resolves the default
// generator for the kind.
func NewColumn(name string, kind generator.Kind, nullable bool, c generator.Constraints) (*Column, error) {
	if name == "" {
		return nil, &generator.ConfigurationError{Field: "name", Reason: "column name must not be empty"}
	}
	if !kind.Valid() {
		return nil, &generator.ConfigurationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", kind)}
	}
	if err := c.Validate(kind); err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}

	gen, err := generator.ForKind(kind)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}

	return &Column{
		Name:        name,
		Kind:        kind,
		Nullable:    nullable,
		Constraints: c,
		gen:         gen,
	}, nil
}

// SetGenerator replaces the default generator with a custom capability.
// Any conforming implementation is accepted; the contract check in
// GenerateValue still applies.
func (col *Column) SetGenerator(g generator.Generator) {
	if g != nil {
		col.gen = g
	}
}

// SetNullRate configures the probability of NULL for a nullable column.
func (col *Column) SetNullRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return &generator.ConfigurationError{Field: "null_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", rate)}
	}
	col.nullRate = rate
	return nil
}

func (col *Column) NullRate() float64 {
	return col.nullRate
}

// GenerateValue draws one value. Nullable columns first draw the null
// decision; otherwise the generator runs and its output is asserted
// against the column's own constraints before being returned.
func (col *Column) GenerateValue(r *rand.Rand) (any, error) {
	if col.Nullable && col.nullRate > 0 && r.Float64() < col.nullRate {
		return nil, nil
	}

	value, err := col.gen.Generate(r, col.Constraints)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", col.Name, err)
	}

	if err := col.checkContract(value); err != nil {
		return nil, err
	}
	return value, nil
}

// checkContract asserts the generated value against the column's bounds.
// Generators are expected to self-constrain, so a violation here is an
// internal fault, not bad input.
func (col *Column) checkContract(value any) error {
	if value == nil {
		if !col.Nullable {
			return &GeneratorContractError{Column: col.Name, Detail: "nil value for non-nullable column"}
		}
		return nil
	}

	c := col.Constraints
	switch v := value.(type) {
	case int64:
		if col.Kind == generator.KindInteger && (v < c.MinInt || v > c.MaxInt) {
			return &GeneratorContractError{Column: col.Name, Detail: fmt.Sprintf("integer %d outside [%d, %d]", v, c.MinInt, c.MaxInt)}
		}
	case float64:
		if col.Kind == generator.KindFloat && (v < c.MinFloat || v > c.MaxFloat) {
			return &GeneratorContractError{Column: col.Name, Detail: fmt.Sprintf("float %g outside [%g, %g]", v, c.MinFloat, c.MaxFloat)}
		}
	case string:
		if c.MaxLength > 0 && len(v) > c.MaxLength {
			return &GeneratorContractError{Column: col.Name, Detail: fmt.Sprintf("string length %d exceeds max_length %d", len(v), c.MaxLength)}
		}
		if v == "" && !col.Nullable {
			return &GeneratorContractError{Column: col.Name, Detail: "empty string for non-nullable column"}
		}
	case time.Time:
		if !c.MinTime.IsZero() && v.Before(c.MinTime) {
			return &GeneratorContractError{Column: col.Name, Detail: fmt.Sprintf("time %s before min %s", v, c.MinTime)}
		}
		if !c.MaxTime.IsZero() && v.After(c.MaxTime) {
			return &GeneratorContractError{Column: col.Name, Detail: fmt.Sprintf("time %s after max %s", v, c.MaxTime)}
		}
	}
	return nil
}
