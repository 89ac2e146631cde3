package mathsolve

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when an exact evaluation divides by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUndefined is returned when a value is NaN or infinite.
	ErrUndefined = errors.New("undefined result")

	// errNotRational marks values outside exact rational arithmetic:
	// irrational constants, inexact roots, complex intermediates.
	errNotRational = errors.New("not an exact rational value")
)

// ParseError reports malformed input. Position is a byte offset into the
// canonical text.
type ParseError struct {
	Reason   string
	Position int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Position, e.Reason)
}

// UnsupportedEquationError reports well-formed input outside the solver's
// reach: several variables, unsupported functions, transcendental equations.
type UnsupportedEquationError struct {
	Reason string
}

func (e *UnsupportedEquationError) Error() string { return "unsupported equation: " + e.Reason }

// InternalConsistencyError reports a derivation whose verification failed.
type InternalConsistencyError struct {
	Detail string
}

func (e *InternalConsistencyError) Error() string { return "internal consistency failure: " + e.Detail }

func unsupported(format string, args ...interface{}) error {
	return &UnsupportedEquationError{Reason: fmt.Sprintf(format, args...)}
}
