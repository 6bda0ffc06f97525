// Package model defines the minimal contract a modelkit model must satisfy
// and provides Base, an embeddable implementation of it.
//
// A model is any entity carrying an identifier. The identifier is assigned
// exactly once: models start with the identity.New placeholder and move to a
// persisted identifier when first assigned. Assigning the same identifier
// again is a no-op; assigning a different persisted identifier over an
// existing one is a conflict error.
//
// Domain types obtain the contract by embedding Base:
//
//	type Person struct {
//	    model.Base
//	    Name string `model:"name,required"`
//	    Age  int    `model:"age"`
//	}
package model

import (
	"sync"

	"github.com/apiforge/modelkit/identity"
	"github.com/apiforge/modelkit/modelerr"
)

// Model is the contract required of every modelkit model.
type Model interface {
	// ID returns the model's identifier, never nil. Unpersisted models
	// return the identity.New placeholder.
	ID() identity.Identifier

	// IsNew reports whether the model has not been assigned a persisted
	// identifier yet. Equivalent to ID().IsNew().
	IsNew() bool

	// AssignID installs the model's identifier. Assigning to a new model
	// succeeds exactly once; re-assigning the identical identifier is a
	// no-op; assigning a different identifier over a persisted one fails
	// with an identity-reassignment conflict. A nil identifier is rejected.
	AssignID(id identity.Identifier) error
}

// Base is an embeddable identifier slot implementing the Model contract.
// Identifier assignment is serialized per instance, so concurrent AssignID
// calls on the same model observe first-wins semantics rather than a race.
type Base struct {
	mu sync.Mutex
	id identity.Identifier
}

// ID returns the assigned identifier, or identity.New if none was assigned.
func (b *Base) ID() identity.Identifier {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.id == nil {
		return identity.New
	}
	return b.id
}

// IsNew reports whether no persisted identifier has been assigned.
func (b *Base) IsNew() bool {
	return b.ID().IsNew()
}

// AssignID implements Model.AssignID with the assignment semantics
// described on the interface.
func (b *Base) AssignID(id identity.Identifier) error {
	if id == nil {
		return modelerr.E("Model.AssignID", modelerr.KindPrecondition, modelerr.ErrNilIdentifier)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.id
	if current == nil || current.IsNew() {
		b.id = id
		return nil
	}
	if current == id {
		return nil
	}
	return modelerr.E("Model.AssignID", modelerr.KindConflict, modelerr.ErrIdentityReassigned).
		WithContext(map[string]any{"current": current.String(), "attempted": id.String()})
}
