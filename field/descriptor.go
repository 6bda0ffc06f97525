package field

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/apiforge/modelkit/model"
	"github.com/apiforge/modelkit/modelerr"
)

// tagKey is the struct tag consulted for builder-populated fields.
const tagKey = "model"

var modelType = reflect.TypeOf((*model.Model)(nil)).Elem()

// Descriptor describes one builder-populated field of a model type: its
// logical name, required/optional flag, preprocessing behavior, and the
// reflective access path into the struct.
type Descriptor struct {
	name       string
	required   bool
	prepTag    string
	preprocess PreprocessFunc
	index      []int
	typ        reflect.Type
	owner      reflect.Type
}

// Name returns the field's logical name as declared in the struct tag.
func (d Descriptor) Name() string { return d.name }

// Required reports whether the field carries the required option.
func (d Descriptor) Required() bool { return d.required }

// PreprocessTag returns the field's preprocessor tag (PreprocessClone or
// PreprocessShare).
func (d Descriptor) PreprocessTag() string { return d.prepTag }

// Type returns the Go type of the underlying struct field.
func (d Descriptor) Type() reflect.Type { return d.typ }

// Preprocess applies the field's configured preprocessor to a raw value.
// Nil values pass through untouched.
func (d Descriptor) Preprocess(value any) any {
	if value == nil || d.preprocess == nil {
		return value
	}
	return d.preprocess(value)
}

// Get reads this field's current value from a model instance via reflection.
// The model must be a pointer to the struct type the descriptor was resolved
// from (or a type embedding it).
func (d Descriptor) Get(m model.Model) (any, error) {
	v := reflect.ValueOf(m)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, modelerr.Errorf("Descriptor.Get", modelerr.KindPopulation,
			"model must be a non-nil struct pointer, got %T", m)
	}
	fv, err := d.fieldValue(v.Elem())
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

// Assign installs a value into this field on the given struct value. The
// struct value must be addressable. Values that are neither assignable nor
// convertible to the field type produce a population error.
func (d Descriptor) Assign(target reflect.Value, value any) error {
	fv, err := d.fieldValue(target)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		return d.populationError("field is not settable")
	}
	if value == nil {
		fv.SetZero()
		return nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(fv.Type()):
		fv.Set(v)
	case v.Type().ConvertibleTo(fv.Type()):
		fv.Set(v.Convert(fv.Type()))
	default:
		return d.populationError(
			fmt.Sprintf("value of type %s is not assignable to field type %s", v.Type(), fv.Type()))
	}
	return nil
}

func (d Descriptor) fieldValue(structValue reflect.Value) (reflect.Value, error) {
	if structValue.Kind() != reflect.Struct {
		return reflect.Value{}, d.populationError(
			fmt.Sprintf("expected struct, got %s", structValue.Kind()))
	}
	return structValue.FieldByIndex(d.index), nil
}

func (d Descriptor) populationError(msg string) error {
	return modelerr.Errorf("Descriptor", modelerr.KindPopulation, "%s", msg).
		WithContext(map[string]any{"field": d.name, "model": d.owner.String()})
}

// Fields is a stable ordered collection of a model type's descriptors,
// keyed by logical name. A Fields value is immutable once resolved.
type Fields struct {
	modelType reflect.Type
	ordered   []Descriptor
	byName    map[string]int
}

// ModelType returns the struct type the fields were resolved from.
func (f Fields) ModelType() reflect.Type { return f.modelType }

// Len returns the number of descriptors.
func (f Fields) Len() int { return len(f.ordered) }

// All returns the descriptors in declaration order (embedded ancestors at
// their embedding position). The returned slice is a copy.
func (f Fields) All() []Descriptor {
	out := make([]Descriptor, len(f.ordered))
	copy(out, f.ordered)
	return out
}

// Has reports whether a descriptor with the given logical name exists.
func (f Fields) Has(name string) bool {
	_, ok := f.byName[name]
	return ok
}

// Get returns the descriptor with the given logical name, or an
// unknown-field error naming the model type.
func (f Fields) Get(name string) (Descriptor, error) {
	i, ok := f.byName[name]
	if !ok {
		owner := "<unresolved>"
		if f.modelType != nil {
			owner = f.modelType.String()
		}
		return Descriptor{}, modelerr.E("Fields.Get", modelerr.KindUnknownField, modelerr.ErrUnknownField).
			WithContext(map[string]any{"field": name, "model": owner})
	}
	return f.ordered[i], nil
}

// resolveFields computes the target-field map for a model struct type by
// walking its tagged fields and those of its embedded model ancestors.
func resolveFields(t reflect.Type) (Fields, error) {
	if t.Kind() != reflect.Struct {
		return Fields{}, modelerr.E("field.Resolve", modelerr.KindDeclaration, modelerr.ErrMalformedModel).
			WithContext(map[string]any{"type": t.String(), "reason": "model type must be a struct"})
	}

	f := Fields{
		modelType: t,
		byName:    make(map[string]int),
	}
	if err := collectFields(t, nil, &f); err != nil {
		return Fields{}, err
	}
	return f, nil
}

func collectFields(t reflect.Type, path []int, out *Fields) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), path...), i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			// Walk embedded ancestors that are themselves models; any
			// other embedded type ends the ancestor chain.
			if reflect.PointerTo(sf.Type).Implements(modelType) {
				if err := collectFields(sf.Type, index, out); err != nil {
					return err
				}
			}
			continue
		}

		tag, ok := sf.Tag.Lookup(tagKey)
		if !ok || tag == "-" {
			continue
		}

		d, err := parseDescriptor(out.modelType, sf, index, tag)
		if err != nil {
			return err
		}
		if _, dup := out.byName[d.name]; dup {
			return declarationError(out.modelType, sf.Name,
				fmt.Sprintf("duplicate field name %q", d.name))
		}
		out.byName[d.name] = len(out.ordered)
		out.ordered = append(out.ordered, d)
	}
	return nil
}

func parseDescriptor(owner reflect.Type, sf reflect.StructField, index []int, tag string) (Descriptor, error) {
	if !sf.IsExported() {
		return Descriptor{}, declarationError(owner, sf.Name, "tagged field must be exported")
	}

	parts := strings.Split(tag, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Descriptor{}, declarationError(owner, sf.Name, "tag must name the field")
	}

	d := Descriptor{
		name:    name,
		prepTag: PreprocessClone,
		index:   index,
		typ:     sf.Type,
		owner:   owner,
	}
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "required":
			d.required = true
		case PreprocessClone:
			d.prepTag = PreprocessClone
		case PreprocessShare:
			d.prepTag = PreprocessShare
		case "":
		default:
			return Descriptor{}, declarationError(owner, sf.Name,
				fmt.Sprintf("unknown tag option %q", strings.TrimSpace(opt)))
		}
	}

	// Preprocessors are bound at resolution time, not looked up per build.
	fn, err := preprocessor(d.prepTag)
	if err != nil {
		return Descriptor{}, declarationError(owner, sf.Name, err.Error())
	}
	d.preprocess = fn
	return d, nil
}

func declarationError(owner reflect.Type, goField, reason string) error {
	return modelerr.E("field.Resolve", modelerr.KindDeclaration, modelerr.ErrMalformedModel).
		WithContext(map[string]any{"model": owner.String(), "goField": goField, "reason": reason})
}
