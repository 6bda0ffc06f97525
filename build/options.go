package build

import (
	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/filter"
)

// FilterFactory produces the filter builder a model builder derives its
// filters through. Supplying a custom factory lets a builder hand out a
// pre-configured filter builder (e.g. one seeded with tenant criteria).
type FilterFactory func(fields field.Fields) *filter.Builder

// Option configures a Builder at construction time.
type Option func(*config)

type config struct {
	provider      field.ValueProvider
	resolver      *field.Resolver
	filterFactory FilterFactory
}

func defaultConfig() config {
	return config{
		provider:      field.Strict{},
		resolver:      field.DefaultResolver(),
		filterFactory: filter.NewBuilder,
	}
}

// WithProvider sets the builder's value-provider strategy. The default is
// field.Strict; field.Lax opts out of missing-required-field errors.
func WithProvider(p field.ValueProvider) Option {
	return func(c *config) {
		if p != nil {
			c.provider = p
		}
	}
}

// WithResolver sets the field-map resolver. The default is the shared
// package resolver; tests and multi-tenant setups may inject their own for
// isolated cache lifetimes.
func WithResolver(r *field.Resolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithFilterFactory sets the factory used by ToFilterBuilder.
func WithFilterFactory(f FilterFactory) Option {
	return func(c *config) {
		if f != nil {
			c.filterFactory = f
		}
	}
}
