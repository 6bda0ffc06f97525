// Package identity provides the model identifier abstraction used across modelkit.
//
// An identifier is a small immutable value describing a model's identity. Four
// variants exist:
//
//   - New: the placeholder identity of a model that has never been persisted
//   - Long: a strictly positive 64-bit integer identifier
//   - UUID: a 128-bit universally unique identifier
//   - Opaque: an arbitrary string identifier, the universal fallback
//
// # Parsing
//
// Parse converts a raw string into the most specific variant that matches,
// trying a fixed strategy order: long integer first, then canonical UUID,
// then opaque string. The opaque strategy accepts every input (including the
// empty string), so it acts as the fallback:
//
//	id, _ := identity.Parse("123")
//	// id is identity.Long with value 123
//
//	id, _ = identity.Parse("8fe6b03c-b3a5-42a4-b95a-795d3bee8b1c")
//	// id is identity.UUID
//
//	id, _ = identity.Parse("-5")
//	// id is identity.Opaque("-5"): zero and negative numbers are not
//	// valid long identifiers and fall through to the opaque strategy
//
// # Equality
//
// Identifiers are comparable values: two identifiers are equal exactly when
// they are the same variant wrapping the same value. Different variants are
// never equal, even when their string forms coincide (Long 5 != Opaque "5").
// The New identifier is a package singleton and is equal only to itself.
//
// # Round-tripping
//
// Every persisted variant round-trips through the factory: parsing an
// identifier's String() form yields an equal identifier of the same variant.
// New is the exception: its string form is empty and is not parseable back
// to New (an empty string parses to Opaque("")). On the wire the New
// identifier is represented by the absence of an identifier field; the Ref
// wrapper implements that convention for JSON, YAML, and plain text.
package identity
