// Package filter provides criteria-based predicates over modelkit models.
// Criteria test a single aspect of a model (a field comparison, an
// identifier match, a nested submodel filter, or a CEL expression) and
// compose via AND into an immutable Filter usable against in-memory model
// collections.
package filter

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/apiforge/modelkit/modelerr"
)

// Comparison enumerates the supported binary comparisons between a model's
// current field value and a target value.
type Comparison int

const (
	// Eq tests value equality (not identity).
	Eq Comparison = iota
	// Lt tests natural ordering: current < target.
	Lt
	// Lte tests natural ordering: current <= target.
	Lte
	// Gt tests natural ordering: current > target.
	Gt
	// Gte tests natural ordering: current >= target.
	Gte
	// StartsWith tests the string form of current for the target prefix.
	StartsWith
	// Contains tests the string form of current for the target substring.
	Contains
	// EndsWith tests the string form of current for the target suffix.
	EndsWith
)

// String returns the comparison's operator notation for diagnostics.
func (c Comparison) String() string {
	switch c {
	case Eq:
		return "="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	case StartsWith:
		return "STARTS WITH"
	case Contains:
		return "CONTAINS"
	case EndsWith:
		return "ENDS WITH"
	default:
		return fmt.Sprintf("Comparison(%d)", int(c))
	}
}

// Evaluate applies the comparison to (current, target). Ordering
// comparisons over operands without a shared natural ordering fail with an
// incomparable-values error; the check is deliberately lazy, happening at
// evaluation time rather than criterion construction.
func (c Comparison) Evaluate(current, target any) (bool, error) {
	switch c {
	case Eq:
		return reflect.DeepEqual(current, target), nil
	case Lt, Lte, Gt, Gte:
		ord, err := compareOrdered(current, target)
		if err != nil {
			return false, err
		}
		switch c {
		case Lt:
			return ord < 0, nil
		case Lte:
			return ord <= 0, nil
		case Gt:
			return ord > 0, nil
		default:
			return ord >= 0, nil
		}
	case StartsWith:
		return strings.HasPrefix(stringForm(current), stringForm(target)), nil
	case Contains:
		return strings.Contains(stringForm(current), stringForm(target)), nil
	case EndsWith:
		return strings.HasSuffix(stringForm(current), stringForm(target)), nil
	default:
		return false, modelerr.Errorf("Comparison.Evaluate", modelerr.KindInternal,
			"unknown comparison %d", int(c))
	}
}

// compareOrdered compares two values under their natural ordering,
// returning <0, 0, or >0. Numbers order numerically across integer and
// float kinds; strings order lexicographically; time.Time orders
// chronologically. Anything else is incomparable.
func compareOrdered(a, b any) (int, error) {
	if a == nil || b == nil {
		return 0, incomparable(a, b)
	}

	if at, aok := a.(time.Time); aok {
		bt, bok := b.(time.Time)
		if !bok {
			return 0, incomparable(a, b)
		}
		return at.Compare(bt), nil
	}

	av, aNum := numeric(a)
	bv, bNum := numeric(b)
	if aNum && bNum {
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if aNum != bNum {
		return 0, incomparable(a, b)
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.String && rb.Kind() == reflect.String {
		return strings.Compare(ra.String(), rb.String()), nil
	}

	return 0, incomparable(a, b)
}

func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func incomparable(a, b any) error {
	return modelerr.E("Comparison.Evaluate", modelerr.KindIncomparable, modelerr.ErrIncomparable).
		WithContext(map[string]any{"left": fmt.Sprintf("%T", a), "right": fmt.Sprintf("%T", b)})
}

func stringForm(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
