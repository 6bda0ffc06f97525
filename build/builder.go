package build

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/filter"
	"github.com/apiforge/modelkit/model"
	"github.com/apiforge/modelkit/modelerr"
)

var modelType = reflect.TypeOf((*model.Model)(nil)).Elem()

// Filterable is satisfied by builders that can mirror their populated state
// into a filter builder.
type Filterable interface {
	ToFilterBuilder() *filter.Builder
}

// Builder populates and constructs models of type M. M must be a struct
// type whose pointer implements model.Model (conventionally by embedding
// model.Base); New enforces this.
//
// Builders are not safe for concurrent use. A builder may be reused across
// builds; each Build produces an independent model.
type Builder[M any] struct {
	Core

	fields        field.Fields
	values        map[string]any
	order         []string
	filterFactory FilterFactory
}

// New creates a Builder for the model type M. The model's target-field map
// is resolved (and cached) here, so declaration problems surface at
// construction rather than first build.
func New[M any](opts ...Option) (*Builder[M], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t := reflect.TypeOf((*M)(nil)).Elem()
	if t.Kind() != reflect.Struct || !reflect.PointerTo(t).Implements(modelType) {
		return nil, modelerr.E("build.New", modelerr.KindDeclaration, modelerr.ErrMalformedModel).
			WithContext(map[string]any{
				"type": t.String(),
				"expected": "a struct type whose pointer implements model.Model; " +
					"declare models as structs embedding model.Base and instantiate builders as build.New[YourModel]()",
			})
	}

	fields, err := cfg.resolver.Fields(t)
	if err != nil {
		return nil, err
	}

	b := &Builder[M]{
		fields:        fields,
		values:        make(map[string]any),
		filterFactory: cfg.filterFactory,
	}
	b.provider = cfg.provider
	return b, nil
}

// Fields returns the builder's target-field map.
func (b *Builder[M]) Fields() field.Fields {
	return b.fields
}

// Set stashes a raw value for the named field. The name must be present in
// the model's target-field map; unknown names fail immediately.
//
// Provider semantics do not apply here: a nil value is legal at Set time
// and only resolved at Build time.
func (b *Builder[M]) Set(name string, value any) error {
	if _, err := b.fields.Get(name); err != nil {
		return err
	}
	if _, seen := b.values[name]; !seen {
		b.order = append(b.order, name)
	}
	b.values[name] = value
	return nil
}

// Value returns the stashed raw value for the named field, or nil if none
// was set. Unknown names fail with an unknown-field error.
func (b *Builder[M]) Value(name string) (any, error) {
	if _, err := b.fields.Get(name); err != nil {
		return nil, err
	}
	return b.values[name], nil
}

// RequiredValue looks up the stashed value and resolves it through the
// provider's required-field path.
func (b *Builder[M]) RequiredValue(name string) (any, error) {
	v, err := b.Value(name)
	if err != nil {
		return nil, err
	}
	return b.provider.Required(v, name)
}

// OptionalValue looks up the stashed value and resolves it through the
// provider's optional-field path, substituting def when absent.
func (b *Builder[M]) OptionalValue(name string, def any) (any, error) {
	v, err := b.Value(name)
	if err != nil {
		return nil, err
	}
	return b.provider.Optional(v, def), nil
}

// Build constructs a model: every target field is resolved through the
// value provider (required or optional per its tag), preprocessed, and
// installed; finally the builder's identifier (or New) is assigned.
func (b *Builder[M]) Build() (*M, error) {
	m := new(M)
	target := reflect.ValueOf(m).Elem()

	for _, d := range b.fields.All() {
		raw := b.values[d.Name()]

		var resolved any
		if d.Required() {
			v, err := b.provider.Required(raw, d.Name())
			if err != nil {
				return nil, err
			}
			resolved = v
		} else {
			resolved = b.provider.Optional(raw, nil)
		}

		if resolved != nil {
			resolved = d.Preprocess(resolved)
		}
		if err := d.Assign(target, resolved); err != nil {
			return nil, err
		}
	}

	if err := any(m).(model.Model).AssignID(b.BuildID()); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildShallow constructs a model carrying only the builder's identifier,
// leaving every other field at its zero value. It represents a reference to
// an already-persisted record, so building without an identifier violates
// the operation's precondition.
func (b *Builder[M]) BuildShallow() (*M, error) {
	if !b.hasID() {
		return nil, modelerr.E("Builder.BuildShallow", modelerr.KindPrecondition, modelerr.ErrNoIdentifier).
			WithContext(map[string]any{"model": b.fields.ModelType().String()})
	}

	m := new(M)
	if err := any(m).(model.Model).AssignID(b.BuildID()); err != nil {
		return nil, err
	}
	return m, nil
}

// ToFilterBuilder derives a filter builder over the same target-field map,
// seeded with an equality criterion for every field that currently has a
// non-nil stashed value.
//
// Criteria reference the raw stashed values, not preprocessed copies:
// filter equality must compare against exactly what the caller supplied,
// and running preprocessors here would let copy side effects perturb the
// comparison.
func (b *Builder[M]) ToFilterBuilder() *filter.Builder {
	fb := b.filterFactory(b.fields)
	for _, d := range b.fields.All() {
		raw := b.values[d.Name()]
		if raw == nil {
			continue
		}
		fb = fb.WithDescriptor(d, filter.Eq, raw)
	}
	return fb
}

// String renders the builder's state for debugging, listing values in the
// order they were first set.
func (b *Builder[M]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Builder[%s]{id=%v", b.fields.ModelType().Name(), b.BuildID())
	for _, name := range b.order {
		fmt.Fprintf(&sb, ", %s=%v", name, b.values[name])
	}
	sb.WriteString("}")
	return sb.String()
}
