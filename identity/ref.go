package identity

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ref is an identifier slot for wire formats. It wraps an Identifier and
// maps the New identifier to the absence of a value: New marshals to null
// (JSON, YAML) or the empty text, and null/absent values unmarshal back to
// New. Persisted identifiers travel as their canonical string form and are
// re-parsed through the factory on the way in.
//
// The zero Ref holds the New identifier.
type Ref struct {
	id Identifier
}

// NewRef creates a Ref wrapping the given identifier. A nil identifier is
// treated as New.
func NewRef(id Identifier) Ref {
	if id == nil {
		id = New
	}
	return Ref{id: id}
}

// Identifier returns the wrapped identifier, never nil.
func (r Ref) Identifier() Identifier {
	if r.id == nil {
		return New
	}
	return r.id
}

// IsNew reports whether the slot holds the New identifier.
func (r Ref) IsNew() bool { return r.Identifier().IsNew() }

// String returns the wrapped identifier's string form.
func (r Ref) String() string { return r.Identifier().String() }

// MarshalText implements encoding.TextMarshaler. New marshals to empty text.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.Identifier().String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Non-empty text is run
// through the factory; empty text yields New.
func (r *Ref) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		r.id = New
		return nil
	}
	id, err := Parse(string(text))
	if err != nil {
		return err
	}
	r.id = id
	return nil
}

// MarshalJSON implements json.Marshaler. New marshals to null.
func (r Ref) MarshalJSON() ([]byte, error) {
	id := r.Identifier()
	if id.IsNew() {
		return []byte("null"), nil
	}
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler. null yields New; a JSON string
// is run through the factory.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		r.id = New
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("identifier must be a JSON string or null: %w", err)
	}
	id, err := Parse(s)
	if err != nil {
		return err
	}
	r.id = id
	return nil
}

// MarshalYAML implements yaml.Marshaler. New marshals to null.
func (r Ref) MarshalYAML() (any, error) {
	id := r.Identifier()
	if id.IsNew() {
		return nil, nil
	}
	return id.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for yaml.v3 nodes. Null nodes
// yield New; scalar nodes are run through the factory.
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		r.id = New
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("identifier must be a YAML scalar or null: %w", err)
	}
	id, err := Parse(s)
	if err != nil {
		return err
	}
	r.id = id
	return nil
}
