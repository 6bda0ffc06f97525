// Package field provides the reflective field machinery behind modelkit
// builders and filters: tagged-field discovery, value-provider strategies,
// and per-field preprocessing.
//
// # Tagged fields
//
// A model declares its builder-populated fields with the `model` struct tag:
//
//	type Person struct {
//	    model.Base
//	    Name    string         `model:"name,required"`
//	    Age     int            `model:"age"`
//	    Tags    []string       `model:"tags,clone"`
//	    Shared  map[string]int `model:"shared,share"`
//	    private string         // untagged: invisible to builders
//	}
//
// The tag's first segment is the logical field name; the remaining segments
// are options:
//
//   - required: the strict value provider rejects a build without a value
//   - clone: the value is defensively copied before installation (default)
//   - share: the value is installed as given, no copy
//
// Fields without a `model` tag (or tagged `model:"-"`) are not part of the
// model's target-field map. Anonymous embedded structs that are themselves
// models are walked recursively, so a model inherits its ancestors' tagged
// fields; embedding stops at the first non-model type.
//
// # Resolution caching
//
// Resolver computes a model type's target-field map once and caches it in a
// bounded, TTL-evicting cache. The cache is purely an optimization: a cold
// cache produces identical results to a warm one, and racing misses simply
// recompute. Cache traffic is observable through OpenTelemetry counters.
//
// # Value providers
//
// ValueProvider decides what happens when a field has no value at build
// time. Strict (the default) fails a required field with a missing-field
// error; Lax silently passes absence through. The choice is observable only
// at build time, never when setting values.
package field
