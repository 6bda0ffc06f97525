// Package modelkit is a modeling helper library for building immutable,
// identifier-aware domain objects consumed and produced by JSON:API-style
// HTTP client layers.
//
// # Core Concepts
//
// The library is organized around a few concepts:
//
//   - Identifiers: a tagged union of identity encodings (long integer,
//     UUID, opaque string, plus the New placeholder) behind one parsing
//     factory — see the identity package
//   - Models: entities carrying an identifier assigned exactly once — see
//     the model package
//   - Builders: tag-driven reflective population of model fields with
//     required/optional semantics and per-field preprocessing — see the
//     build and field packages
//   - Filters: criteria derived from builder state or composed by hand,
//     usable against in-memory model collections — see the filter package
//
// # Getting Started
//
// Declare a model by embedding model.Base and tagging its fields:
//
//	type Person struct {
//	    model.Base
//	    Name string   `model:"name,required"`
//	    Age  int      `model:"age"`
//	    Tags []string `model:"tags"`
//	}
//
// Build instances through a builder:
//
//	b, err := modelkit.NewBuilder[Person]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = b.Set("name", "Bob")
//	_ = b.SetIDString("123")
//	p, err := b.Build()
//
// And derive filters from populated builders:
//
//	f, err := b.ToFilterBuilder().Build()
//	matches, err := filter.Apply(f, people)
//
// This package is a thin facade; the subpackages are the API surface and
// can be imported directly.
package modelkit
