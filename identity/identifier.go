package identity

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/apiforge/modelkit/modelerr"
)

// Identifier represents a model's identity. Implementations are immutable
// comparable values; see the package documentation for equality semantics.
//
// The interface is sealed: the four variants defined in this package are the
// only implementations.
type Identifier interface {
	// String returns the canonical textual form of the identifier.
	// The New identifier returns the empty string.
	String() string

	// IsNew reports whether this is the placeholder identity of an
	// unpersisted model.
	IsNew() bool

	sealed()
}

// newIdentifier is the unexported type behind the New singleton. Equality is
// pointer identity, so New is equal only to itself.
type newIdentifier struct{}

// New is the placeholder identifier carried by models that have never been
// persisted. It has no parseable string form.
var New Identifier = &newIdentifier{}

func (*newIdentifier) String() string { return "" }
func (*newIdentifier) IsNew() bool    { return true }
func (*newIdentifier) sealed()        {}

// Long is an identifier wrapping a strictly positive 64-bit integer.
type Long struct {
	value int64
}

// NewLong creates a Long identifier. The value must be strictly positive;
// zero and negative values violate the variant's invariant.
func NewLong(value int64) (Long, error) {
	if value <= 0 {
		return Long{}, modelerr.Errorf("identity.NewLong", modelerr.KindInvariant,
			"long identifier must be strictly positive, got %d", value)
	}
	return Long{value: value}, nil
}

// MustLong is like NewLong but panics on an invariant violation. It is
// intended for identifiers known valid at compile time, such as test fixtures.
func MustLong(value int64) Long {
	id, err := NewLong(value)
	if err != nil {
		panic(err)
	}
	return id
}

// Value returns the wrapped integer.
func (l Long) Value() int64 { return l.value }

// String returns the base-10 form of the wrapped integer.
func (l Long) String() string { return strconv.FormatInt(l.value, 10) }

// IsNew always reports false: a Long identifier is a persisted identity.
func (l Long) IsNew() bool { return false }

// MarshalText implements encoding.TextMarshaler.
func (l Long) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l Long) sealed() {}

// UUID is an identifier wrapping a 128-bit universally unique identifier.
type UUID struct {
	value uuid.UUID
}

// NewUUID creates a UUID identifier from an existing uuid value.
func NewUUID(value uuid.UUID) UUID {
	return UUID{value: value}
}

// RandomUUID creates a UUID identifier with a freshly generated random value.
func RandomUUID() UUID {
	return UUID{value: uuid.New()}
}

// Value returns the wrapped uuid.
func (u UUID) Value() uuid.UUID { return u.value }

// String returns the canonical 8-4-4-4-12 form of the wrapped uuid.
func (u UUID) String() string { return u.value.String() }

// IsNew always reports false: a UUID identifier is a persisted identity.
func (u UUID) IsNew() bool { return false }

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u UUID) sealed() {}

// Opaque is an identifier wrapping an arbitrary string, including the empty
// string. It is the fallback variant for identities that are neither numeric
// nor UUIDs.
type Opaque struct {
	value string
}

// NewOpaque creates an Opaque identifier wrapping the given string.
func NewOpaque(value string) Opaque {
	return Opaque{value: value}
}

// Value returns the wrapped string.
func (o Opaque) Value() string { return o.value }

// String returns the wrapped string unchanged.
func (o Opaque) String() string { return o.value }

// IsNew always reports false: an Opaque identifier is a persisted identity.
func (o Opaque) IsNew() bool { return false }

// MarshalText implements encoding.TextMarshaler.
func (o Opaque) MarshalText() ([]byte, error) { return []byte(o.value), nil }

func (o Opaque) sealed() {}
