// Package modelerr provides structured error types for modelkit operations.
//
// This package defines standard error kinds and a structured Error type
// that includes the failing operation, an error kind, and optional context.
// It integrates with Go's standard errors package for error wrapping and
// unwrapping, and with log/slog for structured logging.
package modelerr

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors for common modelkit error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNilIdentifier indicates that a nil identifier was supplied where
	// a concrete identifier value is required.
	ErrNilIdentifier = errors.New("identifier must not be nil")

	// ErrUnparsableIdentifier indicates that no parsing strategy accepted
	// the input string. With the opaque fallback strategy installed this
	// cannot happen for any input, but the factory keeps the error so the
	// strategy list remains replaceable.
	ErrUnparsableIdentifier = errors.New("no identifier strategy matched")

	// ErrMissingRequiredField indicates that a field marked required had no
	// value at build time under the strict value provider.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnknownField indicates that a caller referenced a field name that
	// is not part of the model's target-field map.
	ErrUnknownField = errors.New("unknown field")

	// ErrMalformedModel indicates that a builder's model type does not
	// follow the declaration conventions (struct type whose pointer
	// implements model.Model).
	ErrMalformedModel = errors.New("malformed model declaration")

	// ErrIdentityReassigned indicates an attempt to assign a different
	// persisted identifier to a model that already carries one.
	ErrIdentityReassigned = errors.New("identifier already assigned")

	// ErrNoIdentifier indicates that an operation requiring an identifier
	// was invoked on a builder without one (e.g. a shallow build).
	ErrNoIdentifier = errors.New("no identifier set")

	// ErrIncomparable indicates that an ordering comparison was evaluated
	// against operands that have no natural ordering relative to each other.
	ErrIncomparable = errors.New("values are not comparable")
)

// Error kinds categorize errors by their type.
const (
	// KindParse represents identifier parsing failures.
	KindParse = "parse"

	// KindInvariant represents direct-construction invariant violations
	// (e.g. a long identifier that is not strictly positive).
	KindInvariant = "invariant"

	// KindMissingField represents a required field with no value at build time.
	KindMissingField = "missing_field"

	// KindUnknownField represents references to field names outside the
	// target-field map.
	KindUnknownField = "unknown_field"

	// KindDeclaration represents model or builder declaration problems.
	KindDeclaration = "declaration"

	// KindPopulation represents reflective field-population failures.
	KindPopulation = "population"

	// KindConflict represents identity-reassignment conflicts.
	KindConflict = "conflict"

	// KindPrecondition represents violated operation preconditions.
	KindPrecondition = "precondition"

	// KindIncomparable represents comparisons over unordered operands.
	KindIncomparable = "incomparable"

	// KindInternal represents internal modelkit errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category
// of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := modelerr.E("Builder.Build", modelerr.KindMissingField, modelerr.ErrMissingRequiredField).
//	    WithContext(map[string]any{"field": "name", "model": "Person"})
type Error struct {
	// Op is the operation that failed (e.g. "identity.Parse", "Builder.Build").
	Op string

	// Kind categorizes the error (e.g. KindParse, KindUnknownField).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include field names, model types, or offending input values.
	Context map[string]any
}

// E creates a new structured Error for the given operation and kind,
// wrapping the underlying cause.
func E(op, kind string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// Errorf creates a new structured Error whose cause is built with
// fmt.Errorf. It is a convenience for errors that carry no sentinel.
func Errorf(op, kind, format string, args ...any) *Error {
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// Error implements the error interface, returning a formatted message
// that includes the operation, kind, underlying error, and any context.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("modelkit: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("modelkit: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("modelkit: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or on another Error's Op/Kind pair.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context merged in.
// This is useful for adding debugging information to errors.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// LogValue implements slog.LogValuer, emitting the operation, kind, cause,
// and context as structured attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3+len(e.Context))
	attrs = append(attrs, slog.String("op", e.Op))
	attrs = append(attrs, slog.String("kind", e.Kind))
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	for k, v := range e.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return slog.GroupValue(attrs...)
}

// KindOf returns the kind of err if it is (or wraps) a modelkit Error,
// or an empty string otherwise.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
