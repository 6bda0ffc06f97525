package identity

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/apiforge/modelkit/modelerr"
)

// strategy is one entry in the ordered parsing chain. A strategy either
// claims the input and returns an identifier, or declines and lets the
// next strategy try.
type strategy struct {
	name  string
	parse func(s string) (Identifier, bool)
}

// strategies is the fixed parse order: the most specific encoding wins.
// The opaque strategy accepts everything, so today the chain never falls
// through; Parse still guards the exhausted case so the chain stays
// replaceable.
var strategies = []strategy{
	{name: "long", parse: parseLong},
	{name: "uuid", parse: parseUUID},
	{name: "opaque", parse: parseOpaque},
}

// Parse converts a raw string into the most specific identifier variant
// that matches, trying long-integer, canonical UUID, and opaque string in
// that order. See the package documentation for the exact acceptance rules.
func Parse(s string) (Identifier, error) {
	for _, st := range strategies {
		if id, ok := st.parse(s); ok {
			return id, nil
		}
	}
	return nil, modelerr.E("identity.Parse", modelerr.KindParse, modelerr.ErrUnparsableIdentifier).
		WithContext(map[string]any{"input": s})
}

// MustParse is like Parse but panics on failure. Given the opaque fallback
// it cannot currently fail; it exists for symmetry with MustLong.
func MustParse(s string) Identifier {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// parseLong accepts base-10 integers that are strictly positive and fit in
// a signed 64-bit value. Zero, negatives, overflow, and non-numeric text all
// decline, letting the value fall through to the opaque strategy.
func parseLong(s string) (Identifier, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return nil, false
	}
	return Long{value: v}, true
}

// parseUUID accepts only the canonical 8-4-4-4-12 hex form. The uuid package
// also parses braced, URN, and bare-hex encodings; those are deliberately
// declined so their strings remain opaque identifiers.
func parseUUID(s string) (Identifier, bool) {
	if !isCanonicalUUID(s) {
		return nil, false
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return nil, false
	}
	return UUID{value: v}, true
}

// parseOpaque accepts any string, including the empty string.
func parseOpaque(s string) (Identifier, bool) {
	return Opaque{value: s}, true
}

// isCanonicalUUID checks the 8-4-4-4-12 shape without allocating.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	return s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-'
}
