package modelkit

import (
	"github.com/apiforge/modelkit/build"
	"github.com/apiforge/modelkit/identity"
	"github.com/apiforge/modelkit/model"
)

// Model is re-exported from the model package for facade users.
type Model = model.Model

// Identifier is re-exported from the identity package for facade users.
type Identifier = identity.Identifier

// ParseID converts a raw string into the most specific identifier variant,
// delegating to identity.Parse.
func ParseID(s string) (identity.Identifier, error) {
	return identity.Parse(s)
}

// NewBuilder creates a builder for the model type M, delegating to
// build.New.
func NewBuilder[M any](opts ...build.Option) (*build.Builder[M], error) {
	return build.New[M](opts...)
}
