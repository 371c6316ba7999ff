package model

import "fmt"

// All model errors are structural problems detected eagerly: there is no
// retry anywhere, every error carries enough context (table, column,
// relation) to point at the broken configuration.

// NotConfiguredError means row generation was invoked before the table
// model ran its setup. Always a programming error.
type NotConfiguredError struct {
	Table string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("table model %q is not configured: call Configure before generating rows", e.Table)
}

// InvalidArgumentError reports a caller-supplied argument outside the
// accepted domain, such as a negative row count.
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

// EmptyPoolError means a one-to-many relation had no target keys to draw
// from. The caller must generate the referenced table first.
type EmptyPoolError struct {
	FromTable  string
	FromColumn string
	ToTable    string
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("relation %s.%s -> %s: target key pool is empty (generate %q first)",
		e.FromTable, e.FromColumn, e.ToTable, e.ToTable)
}

// InsufficientPoolError means a many-to-many relation could not satisfy
// its minimum fan-out from the available pool.
type InsufficientPoolError struct {
	FromTable string
	ToTable   string
	Needed    int
	Available int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("relation %s -> %s: pool has %d keys but min_related is %d",
		e.FromTable, e.ToTable, e.Available, e.Needed)
}

// GeneratorContractError is an internal fault: a generator returned a
// value that violates the constraints it was given. Always fatal, it
// indicates a bug in the generator itself.
type GeneratorContractError struct {
	Column string
	Detail string
}

func (e *GeneratorContractError) Error() string {
	return fmt.Sprintf("generator contract violated for column %q: %s", e.Column, e.Detail)
}
