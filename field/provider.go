package field

import "github.com/apiforge/modelkit/modelerr"

// ValueProvider decides how builders resolve field values at build time.
// Implementations must treat a nil value as "absent".
//
// The provider is a pure strategy substitution point: swapping providers
// changes behavior only when a build resolves values, never when values
// are set on a builder.
type ValueProvider interface {
	// Required resolves the value of a field marked required. The field
	// name is available for diagnostics.
	Required(value any, name string) (any, error)

	// Optional resolves the value of an optional field, substituting def
	// when the value is absent.
	Optional(value, def any) any
}

// Strict is the default ValueProvider. A required field with no value fails
// the build with a missing-required-field error.
type Strict struct{}

// Required returns the value, or a missing-field error naming the field
// when the value is absent.
func (Strict) Required(value any, name string) (any, error) {
	if value == nil {
		return nil, modelerr.E("ValueProvider.Required", modelerr.KindMissingField, modelerr.ErrMissingRequiredField).
			WithContext(map[string]any{"field": name})
	}
	return value, nil
}

// Optional returns the value, or def when the value is absent.
func (Strict) Optional(value, def any) any {
	if value == nil {
		return def
	}
	return value
}

// Lax is a ValueProvider that never fails: a required field behaves exactly
// like an optional field with an absent default. Opting into Lax is the
// only sanctioned way to suppress missing-required-field errors.
type Lax struct{}

// Required resolves like Optional with a nil default and never errors.
func (Lax) Required(value any, _ string) (any, error) {
	return Lax{}.Optional(value, nil), nil
}

// Optional returns the value, or def when the value is absent.
func (Lax) Optional(value, def any) any {
	if value == nil {
		return def
	}
	return value
}
