package build

import (
	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/identity"
	"github.com/apiforge/modelkit/modelerr"
)

// Core is the identifier-handling base shared by builders. It owns the
// builder's identifier slot and its value-provider strategy.
type Core struct {
	id       identity.Identifier
	provider field.ValueProvider
}

// SetID stores the identifier the built model will carry. A nil identifier
// is rejected.
func (c *Core) SetID(id identity.Identifier) error {
	if id == nil {
		return modelerr.E("Builder.SetID", modelerr.KindPrecondition, modelerr.ErrNilIdentifier)
	}
	c.id = id
	return nil
}

// SetIDString parses a raw string through the identifier factory and stores
// the result. Parse failures are returned unchanged.
func (c *Core) SetIDString(s string) error {
	id, err := identity.Parse(s)
	if err != nil {
		return err
	}
	c.id = id
	return nil
}

// BuildID returns the stored identifier, or a New identifier if none was
// ever set. It never returns nil.
func (c *Core) BuildID() identity.Identifier {
	if c.id == nil {
		return identity.New
	}
	return c.id
}

// hasID reports whether an identifier was explicitly set.
func (c *Core) hasID() bool {
	return c.id != nil
}

// Provider returns the builder's value-provider strategy.
func (c *Core) Provider() field.ValueProvider {
	return c.provider
}
