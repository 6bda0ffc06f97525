package field

import (
	"fmt"
	"reflect"
	"sync"
)

// Preprocessor tags selectable in the `model` struct tag.
const (
	// PreprocessClone defensively copies mutable values before they are
	// installed into a freshly built model. This is the default.
	PreprocessClone = "clone"

	// PreprocessShare installs the value exactly as given. Intended for
	// deliberately shared immutable or constant values.
	PreprocessShare = "share"
)

// PreprocessFunc transforms a raw non-nil field value before it is
// installed into a newly built model.
type PreprocessFunc func(value any) any

// Cloner lets a value type supply its own defensive copy. The clone
// preprocessor prefers CloneValue over its generic shallow-copy rules.
type Cloner interface {
	CloneValue() any
}

// preprocessors maps tags to functions. The registry is consulted once per
// descriptor at resolution time, so a RegisterPreprocessor call only affects
// field maps resolved after it.
var (
	preprocessorsMu sync.RWMutex
	preprocessors   = map[string]PreprocessFunc{
		PreprocessClone: CloneValue,
		PreprocessShare: func(value any) any { return value },
	}
)

// RegisterPreprocessor installs a custom preprocessor under the given tag,
// making it available to `model` struct tags. Registering an existing tag
// replaces it.
func RegisterPreprocessor(tag string, fn PreprocessFunc) {
	preprocessorsMu.Lock()
	defer preprocessorsMu.Unlock()
	preprocessors[tag] = fn
}

func preprocessor(tag string) (PreprocessFunc, error) {
	preprocessorsMu.RLock()
	defer preprocessorsMu.RUnlock()
	fn, ok := preprocessors[tag]
	if !ok {
		return nil, fmt.Errorf("no preprocessor registered for tag %q", tag)
	}
	return fn, nil
}

// CloneValue is the clone preprocessor. It shallow-copies slices and maps,
// delegates to Cloner when the value implements it, and passes everything
// else through unchanged (scalars, strings, and other immutable values need
// no copy; arrays and plain structs already copy by value).
func CloneValue(value any) any {
	if value == nil {
		return nil
	}
	if c, ok := value.(Cloner); ok {
		return c.CloneValue()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return value
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return value
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	default:
		return value
	}
}
