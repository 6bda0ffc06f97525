package filter

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/identity"
	"github.com/apiforge/modelkit/model"
	"github.com/apiforge/modelkit/modelerr"
)

// Criterion is a single predicate over a model. Criteria are immutable once
// constructed; their String form exists for diagnostics only.
type Criterion interface {
	// Matches reports whether the model satisfies the criterion.
	// Evaluation-time type problems (e.g. ordering over incomparable
	// values) surface as errors rather than silent mismatches.
	Matches(m model.Model) (bool, error)

	// String returns a human-readable form of the criterion.
	String() string
}

// And combines criteria into a conjunction: the result matches iff every
// wrapped criterion matches. With zero criteria the conjunction is
// vacuously true and matches every model.
func And(criteria ...Criterion) Criterion {
	copied := make([]Criterion, len(criteria))
	copy(copied, criteria)
	return andCriterion(copied)
}

type andCriterion []Criterion

func (a andCriterion) Matches(m model.Model) (bool, error) {
	for _, c := range a {
		ok, err := c.Matches(m)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (a andCriterion) String() string {
	if len(a) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(a))
	for i, c := range a {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " AND ")
}

// Where builds a criterion from a field accessor function. The accessor is
// applied directly to the model and its result compared against target.
// The name parameter is used only for the criterion's string form.
func Where(name string, accessor func(m model.Model) any, cmp Comparison, target any) Criterion {
	return funcCriterion{name: name, accessor: accessor, cmp: cmp, target: target}
}

type funcCriterion struct {
	name     string
	accessor func(m model.Model) any
	cmp      Comparison
	target   any
}

func (c funcCriterion) Matches(m model.Model) (bool, error) {
	return c.cmp.Evaluate(c.accessor(m), c.target)
}

func (c funcCriterion) String() string {
	return fmt.Sprintf("%s %s %v", c.name, c.cmp, c.target)
}

// ByField builds a criterion that reads the described field from the model
// via reflection at evaluation time and compares it against target.
func ByField(d field.Descriptor, cmp Comparison, target any) Criterion {
	return fieldCriterion{desc: d, cmp: cmp, target: target}
}

type fieldCriterion struct {
	desc   field.Descriptor
	cmp    Comparison
	target any
}

func (c fieldCriterion) Matches(m model.Model) (bool, error) {
	current, err := c.desc.Get(m)
	if err != nil {
		return false, err
	}
	return c.cmp.Evaluate(current, c.target)
}

func (c fieldCriterion) String() string {
	return fmt.Sprintf("%s %s %v", c.desc.Name(), c.cmp, c.target)
}

// ByID builds a criterion matching models whose identifier equals target.
func ByID(target identity.Identifier) Criterion {
	return idCriterion{target: target}
}

type idCriterion struct {
	target identity.Identifier
}

func (c idCriterion) Matches(m model.Model) (bool, error) {
	return m.ID() == c.target, nil
}

func (c idCriterion) String() string {
	return fmt.Sprintf("id = %s", c.target)
}

// BySubmodel builds a criterion that reads the described field, expects it
// to reference another model, and delegates matching to the given filter
// evaluated against that submodel. A nil reference never matches.
func BySubmodel(d field.Descriptor, sub Filter) Criterion {
	return submodelCriterion{desc: d, sub: sub}
}

type submodelCriterion struct {
	desc field.Descriptor
	sub  Filter
}

func (c submodelCriterion) Matches(m model.Model) (bool, error) {
	current, err := c.desc.Get(m)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}

	sm, ok := current.(model.Model)
	if !ok {
		return false, modelerr.Errorf("Criterion.Matches", modelerr.KindIncomparable,
			"field %q does not reference a model, got %T", c.desc.Name(), current)
	}
	// A typed nil pointer is still a nil reference.
	rv := reflect.ValueOf(sm)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false, nil
	}
	return c.sub.Matches(sm)
}

func (c submodelCriterion) String() string {
	return fmt.Sprintf("%s MATCHES (%s)", c.desc.Name(), c.sub)
}
