package field

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Cache defaults. A handful of model types is the norm, so the cache stays
// small; the TTL bounds staleness if preprocessors are re-registered.
const (
	defaultMaxEntries = 32
	defaultTTL        = 10 * time.Minute
)

// Resolver computes and caches target-field maps for model types.
//
// The cache is shared safely across goroutines. It is an optimization only:
// entries evicted by size or TTL are recomputed transparently, and
// concurrent misses for the same type may recompute redundantly rather
// than coordinate, since resolution is idempotent and cheap.
type Resolver struct {
	cache *ristretto.Cache[string, Fields]
	ttl   time.Duration

	cacheHits   metric.Int64Counter
	cacheMisses metric.Int64Counter
}

// ResolverOption configures a Resolver.
type ResolverOption func(*resolverConfig)

type resolverConfig struct {
	maxEntries    int64
	ttl           time.Duration
	meterProvider metric.MeterProvider
}

// WithMaxEntries bounds the number of cached field maps.
func WithMaxEntries(n int64) ResolverOption {
	return func(c *resolverConfig) {
		c.maxEntries = n
	}
}

// WithTTL bounds the lifetime of cached field maps.
func WithTTL(d time.Duration) ResolverOption {
	return func(c *resolverConfig) {
		c.ttl = d
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider used for cache
// hit/miss counters. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) ResolverOption {
	return func(c *resolverConfig) {
		c.meterProvider = mp
	}
}

// NewResolver creates a Resolver with a bounded, TTL-evicting cache.
func NewResolver(opts ...ResolverOption) (*Resolver, error) {
	cfg := resolverConfig{
		maxEntries:    defaultMaxEntries,
		ttl:           defaultTTL,
		meterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, Fields]{
		NumCounters: cfg.maxEntries * 10,
		MaxCost:     cfg.maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("field: creating resolver cache: %w", err)
	}

	meter := cfg.meterProvider.Meter("github.com/apiforge/modelkit/field")
	hits, err := meter.Int64Counter("modelkit.fieldmap.cache.hits",
		metric.WithDescription("Field-map resolutions served from cache"))
	if err != nil {
		return nil, fmt.Errorf("field: creating hit counter: %w", err)
	}
	misses, err := meter.Int64Counter("modelkit.fieldmap.cache.misses",
		metric.WithDescription("Field-map resolutions computed by reflection"))
	if err != nil {
		return nil, fmt.Errorf("field: creating miss counter: %w", err)
	}

	return &Resolver{
		cache:       cache,
		ttl:         cfg.ttl,
		cacheHits:   hits,
		cacheMisses: misses,
	}, nil
}

// Fields returns the target-field map for the given model struct type,
// serving from cache when possible.
func (r *Resolver) Fields(t reflect.Type) (Fields, error) {
	key := cacheKey(t)
	if cached, ok := r.cache.Get(key); ok {
		r.cacheHits.Add(context.Background(), 1)
		return cached, nil
	}
	r.cacheMisses.Add(context.Background(), 1)

	fields, err := resolveFields(t)
	if err != nil {
		return Fields{}, err
	}
	r.cache.SetWithTTL(key, fields, 1, r.ttl)
	return fields, nil
}

// Close releases the resolver's cache resources.
func (r *Resolver) Close() {
	r.cache.Close()
}

func cacheKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

var (
	defaultResolverOnce sync.Once
	defaultResolver     *Resolver
)

// DefaultResolver returns the shared package resolver, creating it on first
// use. Callers that need isolated cache lifetimes (tests, multi-tenant
// setups) should construct their own with NewResolver.
func DefaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		r, err := NewResolver()
		if err != nil {
			// The default configuration is statically valid; a failure
			// here is a programming error.
			panic(err)
		}
		defaultResolver = r
	})
	return defaultResolver
}
