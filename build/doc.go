// Package build provides the annotation-driven model builder.
//
// A builder is created for a concrete model type and populated with named
// field values; Build then instantiates the model, resolves every tagged
// field through the configured value provider, applies each field's
// preprocessor, and installs the values plus the identifier:
//
//	b, err := build.New[Person]()
//	if err != nil { ... }
//	_ = b.Set("name", "Bob")
//	_ = b.Set("age", 30)
//	_ = b.SetIDString("123")
//
//	p, err := b.Build()
//	// p.Name == "Bob", p.Age == 30, p.ID() == identity.Long(123)
//
// Field names are validated against the model's target-field map at Set
// time: referencing a name without a `model` tag is an unknown-field error,
// not a silent no-op.
//
// BuildShallow produces a model carrying only its identifier, representing
// a reference to an already-persisted record without materializing its
// state. ToFilterBuilder mirrors the builder's populated fields into
// equality criteria, yielding a query filter that matches models shaped
// like the one being built.
//
// Builders are not safe for concurrent use; the field-map cache they share
// is. A builder may be reused: each Build returns an independent model.
package build
