package filter

import (
	"github.com/apiforge/modelkit/model"
)

// Filter is an immutable conjunction of criteria. The zero Filter has no
// criteria and matches every model (vacuous truth). Fields that no
// criterion constrains are unconstrained: any value matches.
type Filter struct {
	root Criterion
}

// New creates a Filter from the given criteria. The criteria list is fixed
// at construction; criteria cannot be added or removed afterwards.
func New(criteria ...Criterion) Filter {
	return Filter{root: And(criteria...)}
}

// Matches reports whether the model satisfies every criterion.
func (f Filter) Matches(m model.Model) (bool, error) {
	if f.root == nil {
		return true, nil
	}
	return f.root.Matches(m)
}

// String returns the filter's criteria in a human-readable form.
func (f Filter) String() string {
	if f.root == nil {
		return "TRUE"
	}
	return f.root.String()
}

// Apply returns the models matching the filter, preserving input order.
// Evaluation errors abort the scan.
func Apply[M model.Model](f Filter, models []M) ([]M, error) {
	var out []M
	for _, m := range models {
		ok, err := f.Matches(m)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}
