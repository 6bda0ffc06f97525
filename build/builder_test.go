package build

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/filter"
	"github.com/apiforge/modelkit/identity"
	"github.com/apiforge/modelkit/model"
	"github.com/apiforge/modelkit/modelerr"
)

type person struct {
	model.Base
	Name   string         `model:"name,required"`
	Age    int            `model:"age"`
	Tags   []string       `model:"tags"`
	Shared map[string]int `model:"shared,share"`
}

func TestNew_RejectsNonModelTypes(t *testing.T) {
	type plain struct {
		Name string `model:"name"`
	}

	_, err := New[plain]()
	require.Error(t, err)
	assert.ErrorIs(t, err, modelerr.ErrMalformedModel)
	assert.Contains(t, err.Error(), "model.Model")

	_, err = New[int]()
	assert.ErrorIs(t, err, modelerr.ErrMalformedModel)
}

func TestBuilder_Build(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)

	require.NoError(t, b.Set("name", "Bob"))
	require.NoError(t, b.Set("age", 30))
	require.NoError(t, b.SetIDString("123"))

	p, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "Bob", p.Name)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, identity.MustLong(123), p.ID())
	assert.False(t, p.IsNew())
}

func TestBuilder_BuildWithoutIDIsNew(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, b.Set("name", "Bob"))

	p, err := b.Build()
	require.NoError(t, err)
	assert.True(t, p.IsNew())
	assert.Same(t, identity.New, p.ID())
}

func TestBuilder_UnknownFieldRejected(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)

	err = b.Set("nickname", "Bobby")
	require.Error(t, err)
	assert.ErrorIs(t, err, modelerr.ErrUnknownField)
	assert.Contains(t, err.Error(), "nickname")
	assert.Contains(t, err.Error(), "person")

	_, err = b.Value("nickname")
	assert.ErrorIs(t, err, modelerr.ErrUnknownField)
}

func TestBuilder_StrictVsLax(t *testing.T) {
	// Strict: a build without the required name fails.
	strict, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, strict.Set("age", 30))

	_, err = strict.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, modelerr.ErrMissingRequiredField)
	assert.Contains(t, err.Error(), "name")

	// Lax: the same build succeeds with the field left at its zero value.
	lax, err := New[person](WithProvider(field.Lax{}))
	require.NoError(t, err)
	require.NoError(t, lax.Set("age", 30))

	p, err := lax.Build()
	require.NoError(t, err)
	assert.Equal(t, "", p.Name)
	assert.Equal(t, 30, p.Age)
}

func TestBuilder_ProviderDifferenceInvisibleAtSetTime(t *testing.T) {
	lax, err := New[person](WithProvider(field.Lax{}))
	require.NoError(t, err)
	strict, err := New[person]()
	require.NoError(t, err)

	// Setting values behaves identically under both providers, including
	// setting nil for a required field.
	for _, b := range []*Builder[person]{lax, strict} {
		require.NoError(t, b.Set("name", nil))
		require.NoError(t, b.Set("age", 30))
	}
}

func TestBuilder_RequiredAndOptionalValue(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, b.Set("name", "Bob"))

	v, err := b.RequiredValue("name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", v)

	_, err = b.RequiredValue("age")
	assert.ErrorIs(t, err, modelerr.ErrMissingRequiredField)

	v, err = b.OptionalValue("age", 18)
	require.NoError(t, err)
	assert.Equal(t, 18, v)
}

func TestBuilder_CloningIsolatesInstances(t *testing.T) {
	shared := []string{"a", "b"}

	first, err := New[person](WithProvider(field.Lax{}))
	require.NoError(t, err)
	require.NoError(t, first.Set("tags", shared))

	second, err := New[person](WithProvider(field.Lax{}))
	require.NoError(t, err)
	require.NoError(t, second.Set("tags", shared))

	p1, err := first.Build()
	require.NoError(t, err)
	p2, err := second.Build()
	require.NoError(t, err)

	p1.Tags[0] = "mutated"
	assert.Equal(t, "a", p2.Tags[0], "cloned fields must not alias across models")
	assert.Equal(t, "a", shared[0], "cloned fields must not alias the caller's value")
}

func TestBuilder_ShareKeepsReference(t *testing.T) {
	counts := map[string]int{"a": 1}

	b, err := New[person](WithProvider(field.Lax{}))
	require.NoError(t, err)
	require.NoError(t, b.Set("shared", counts))

	p1, err := b.Build()
	require.NoError(t, err)
	p2, err := b.Build()
	require.NoError(t, err)

	p1.Shared["b"] = 2
	assert.Equal(t, 2, p2.Shared["b"], "share-tagged fields alias the identical reference")
	assert.Equal(t, 2, counts["b"])
}

func TestBuilder_ReuseProducesIndependentModels(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, b.Set("name", "Bob"))
	require.NoError(t, b.Set("tags", []string{"x"}))

	p1, err := b.Build()
	require.NoError(t, err)
	p2, err := b.Build()
	require.NoError(t, err)

	require.NotSame(t, p1, p2)
	p1.Tags[0] = "mutated"
	assert.Equal(t, "x", p2.Tags[0])
}

func TestBuilder_BuildShallow(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)

	// Without an identifier the precondition is violated.
	_, err = b.BuildShallow()
	require.Error(t, err)
	assert.ErrorIs(t, err, modelerr.ErrNoIdentifier)
	assert.Equal(t, modelerr.KindPrecondition, modelerr.KindOf(err))

	// With an identifier, only the identifier is populated — even though
	// other values are stashed.
	require.NoError(t, b.Set("name", "Bob"))
	require.NoError(t, b.SetID(identity.MustLong(7)))

	p, err := b.BuildShallow()
	require.NoError(t, err)
	assert.Equal(t, identity.MustLong(7), p.ID())
	assert.Equal(t, "", p.Name)
	assert.Zero(t, p.Age)
	assert.Nil(t, p.Tags)
}

func TestBuilder_SetIDVariants(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)

	require.Error(t, b.SetID(nil))
	assert.Same(t, identity.New, b.BuildID())

	require.NoError(t, b.SetIDString("8fe6b03c-b3a5-42a4-b95a-795d3bee8b1c"))
	_, isUUID := b.BuildID().(identity.UUID)
	assert.True(t, isUUID)

	require.NoError(t, b.SetID(identity.NewOpaque("o-1")))
	assert.Equal(t, identity.NewOpaque("o-1"), b.BuildID())
}

func TestBuilder_ToFilterBuilderMirrorsState(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, b.Set("name", "Bob"))
	// age deliberately unset: it must stay unconstrained.

	f, err := b.ToFilterBuilder().Build()
	require.NoError(t, err)

	for _, m := range []*person{
		{Name: "Bob", Age: 30},
		{Name: "Bob", Age: 9},
		{Name: "Bob"},
	} {
		ok, err := f.Matches(m)
		require.NoError(t, err)
		assert.True(t, ok, "age must be unconstrained for %+v", m)
	}

	ok, err := f.Matches(&person{Name: "Alice", Age: 30})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuilder_FilterUsesRawValues(t *testing.T) {
	tags := []string{"vip"}

	b, err := New[person](WithProvider(field.Lax{}))
	require.NoError(t, err)
	require.NoError(t, b.Set("tags", tags))

	f, err := b.ToFilterBuilder().Build()
	require.NoError(t, err)

	// A model holding an equal (deep) tags value matches: criteria compare
	// the caller-supplied value, unaffected by the clone preprocessor.
	ok, err := f.Matches(&person{Tags: []string{"vip"}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuilder_CustomFilterFactory(t *testing.T) {
	// The factory hook lets a builder subtype hand out filter builders
	// pre-seeded with its own criteria.
	factory := func(fields field.Fields) *filter.Builder {
		return filter.NewBuilder(fields).WithFieldAtLeast("age", 18)
	}

	b, err := New[person](WithFilterFactory(factory))
	require.NoError(t, err)
	require.NoError(t, b.Set("name", "Bob"))

	f, err := b.ToFilterBuilder().Build()
	require.NoError(t, err)

	ok, err := f.Matches(&person{Name: "Bob", Age: 30})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Matches(&person{Name: "Bob", Age: 9})
	require.NoError(t, err)
	assert.False(t, ok, "factory-seeded criteria must apply")
}

func TestBuilder_StringPreservesInsertionOrder(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, b.Set("age", 30))
	require.NoError(t, b.Set("name", "Bob"))
	require.NoError(t, b.Set("age", 31)) // overwrite keeps original position

	s := b.String()
	assert.Contains(t, s, "Builder[person]")
	if agePos, namePos := strings.Index(s, "age=31"), strings.Index(s, "name=Bob"); agePos < 0 || namePos < 0 || agePos > namePos {
		t.Errorf("String() = %q, want age before name", s)
	}
}

func TestBuilder_PopulationErrorNamesFieldAndModel(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	require.NoError(t, b.Set("name", "Bob"))
	require.NoError(t, b.Set("age", "not a number"))

	_, err = b.Build()
	require.Error(t, err)
	assert.Equal(t, modelerr.KindPopulation, modelerr.KindOf(err))
	assert.Contains(t, err.Error(), "age")
	assert.Contains(t, err.Error(), "person")
}

func TestBuilder_SatisfiesFilterable(t *testing.T) {
	b, err := New[person]()
	require.NoError(t, err)
	var _ Filterable = b
}
