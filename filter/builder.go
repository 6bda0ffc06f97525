package filter

import (
	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/identity"
	"github.com/apiforge/modelkit/modelerr"
)

// Builder accumulates criteria against a fixed field map and produces an
// immutable Filter. It is a sticky-error fluent builder: the first failure
// (typically an unknown field name) is retained and surfaced by Err and
// Build, and later calls become no-ops.
//
//	f, err := filter.NewBuilder(fields).
//	    WithFieldEqualTo("name", "Bob").
//	    WithFieldAtLeast("age", 18).
//	    Build()
//
// Builders are not safe for concurrent use.
type Builder struct {
	fields   field.Fields
	criteria []Criterion
	err      error
}

// NewBuilder creates a Builder over the given field map. The field map is
// fixed for the builder's lifetime; names not present in it are rejected.
func NewBuilder(fields field.Fields) *Builder {
	return &Builder{fields: fields}
}

// WithField adds a comparison criterion for the named field. Unknown names
// fail the builder with a descriptive unknown-field error.
func (b *Builder) WithField(name string, cmp Comparison, target any) *Builder {
	if b.err != nil {
		return b
	}
	d, err := b.fields.Get(name)
	if err != nil {
		b.err = modelerr.E("FilterBuilder", modelerr.KindUnknownField, err)
		return b
	}
	return b.WithDescriptor(d, cmp, target)
}

// WithFieldEqualTo adds an equality criterion for the named field.
func (b *Builder) WithFieldEqualTo(name string, target any) *Builder {
	return b.WithField(name, Eq, target)
}

// WithFieldLessThan adds a strict less-than criterion for the named field.
func (b *Builder) WithFieldLessThan(name string, target any) *Builder {
	return b.WithField(name, Lt, target)
}

// WithFieldAtMost adds a less-than-or-equal criterion for the named field.
func (b *Builder) WithFieldAtMost(name string, target any) *Builder {
	return b.WithField(name, Lte, target)
}

// WithFieldGreaterThan adds a strict greater-than criterion for the named field.
func (b *Builder) WithFieldGreaterThan(name string, target any) *Builder {
	return b.WithField(name, Gt, target)
}

// WithFieldAtLeast adds a greater-than-or-equal criterion for the named field.
func (b *Builder) WithFieldAtLeast(name string, target any) *Builder {
	return b.WithField(name, Gte, target)
}

// WithFieldStartingWith adds a string-prefix criterion for the named field.
func (b *Builder) WithFieldStartingWith(name string, target any) *Builder {
	return b.WithField(name, StartsWith, target)
}

// WithFieldContaining adds a substring criterion for the named field.
func (b *Builder) WithFieldContaining(name string, target any) *Builder {
	return b.WithField(name, Contains, target)
}

// WithFieldEndingWith adds a string-suffix criterion for the named field.
func (b *Builder) WithFieldEndingWith(name string, target any) *Builder {
	return b.WithField(name, EndsWith, target)
}

// WithDescriptor adds a comparison criterion for an already-resolved field
// descriptor, bypassing the name lookup.
func (b *Builder) WithDescriptor(d field.Descriptor, cmp Comparison, target any) *Builder {
	if b.err != nil {
		return b
	}
	b.criteria = append(b.criteria, ByField(d, cmp, target))
	return b
}

// WithID adds an identifier-equality criterion.
func (b *Builder) WithID(id identity.Identifier) *Builder {
	if b.err != nil {
		return b
	}
	if id == nil {
		b.err = modelerr.E("FilterBuilder.WithID", modelerr.KindPrecondition, modelerr.ErrNilIdentifier)
		return b
	}
	b.criteria = append(b.criteria, ByID(id))
	return b
}

// WithSubmodel adds a criterion delegating to a nested filter evaluated
// against the named field's referenced submodel.
func (b *Builder) WithSubmodel(name string, sub Filter) *Builder {
	if b.err != nil {
		return b
	}
	d, err := b.fields.Get(name)
	if err != nil {
		b.err = modelerr.E("FilterBuilder", modelerr.KindUnknownField, err)
		return b
	}
	b.criteria = append(b.criteria, BySubmodel(d, sub))
	return b
}

// WithExpr compiles a CEL expression over the builder's field map and adds
// it as a criterion.
func (b *Builder) WithExpr(expression string) *Builder {
	if b.err != nil {
		return b
	}
	c, err := Expr(b.fields, expression)
	if err != nil {
		b.err = err
		return b
	}
	b.criteria = append(b.criteria, c)
	return b
}

// WithCriterion adds an arbitrary pre-built criterion.
func (b *Builder) WithCriterion(c Criterion) *Builder {
	if b.err != nil {
		return b
	}
	b.criteria = append(b.criteria, c)
	return b
}

// Err returns the builder's sticky error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build produces the immutable Filter, or the builder's sticky error.
// Fields never given a criterion are unconstrained.
func (b *Builder) Build() (Filter, error) {
	if b.err != nil {
		return Filter{}, b.err
	}
	return New(b.criteria...), nil
}
