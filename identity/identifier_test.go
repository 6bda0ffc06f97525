package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestIdentifierEquality(t *testing.T) {
	u := uuid.MustParse("8fe6b03c-b3a5-42a4-b95a-795d3bee8b1c")

	tests := []struct {
		name  string
		a, b  Identifier
		equal bool
	}{
		{name: "same long value", a: MustLong(5), b: MustLong(5), equal: true},
		{name: "different long values", a: MustLong(5), b: MustLong(6), equal: false},
		{name: "same uuid value", a: NewUUID(u), b: NewUUID(u), equal: true},
		{name: "same opaque value", a: NewOpaque("x"), b: NewOpaque("x"), equal: true},
		{name: "long vs opaque with same string form", a: MustLong(5), b: NewOpaque("5"), equal: false},
		{name: "uuid vs opaque with same string form", a: NewUUID(u), b: NewOpaque(u.String()), equal: false},
		{name: "new equals itself", a: New, b: New, equal: true},
		{name: "new vs opaque empty", a: New, b: NewOpaque(""), equal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a == tt.b; got != tt.equal {
				t.Errorf("(%#v == %#v) = %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestIdentifierHashability(t *testing.T) {
	// Identifiers are used as map keys; equal identifiers must collide.
	seen := map[Identifier]int{
		MustLong(7):    1,
		NewOpaque("7"): 2,
		RandomUUID():   3,
		New:            4,
	}
	seen[MustLong(7)] = 10

	if seen[MustLong(7)] != 10 {
		t.Error("equal Long identifiers should share a map slot")
	}
	if seen[NewOpaque("7")] != 2 {
		t.Error("Opaque(\"7\") must not collide with Long(7)")
	}
	if seen[New] != 4 {
		t.Error("the New singleton should be a stable map key")
	}
}

func TestIsNew(t *testing.T) {
	if !New.IsNew() {
		t.Error("New.IsNew() = false, want true")
	}
	for _, id := range []Identifier{MustLong(1), RandomUUID(), NewOpaque("")} {
		if id.IsNew() {
			t.Errorf("%T.IsNew() = true, want false", id)
		}
	}
}

func TestStringForms(t *testing.T) {
	if got := New.String(); got != "" {
		t.Errorf("New.String() = %q, want empty", got)
	}
	if got := MustLong(42).String(); got != "42" {
		t.Errorf("Long(42).String() = %q", got)
	}
	u := uuid.MustParse("8FE6B03C-B3A5-42A4-B95A-795D3BEE8B1C")
	if got := NewUUID(u).String(); got != "8fe6b03c-b3a5-42a4-b95a-795d3bee8b1c" {
		t.Errorf("UUID.String() = %q, want canonical lowercase form", got)
	}
	if got := NewOpaque("ref/7").String(); got != "ref/7" {
		t.Errorf("Opaque.String() = %q", got)
	}
}

func TestValueAccessors(t *testing.T) {
	if MustLong(9).Value() != 9 {
		t.Error("Long.Value mismatch")
	}
	u := uuid.New()
	if NewUUID(u).Value() != u {
		t.Error("UUID.Value mismatch")
	}
	if NewOpaque("k").Value() != "k" {
		t.Error("Opaque.Value mismatch")
	}
}
