package field

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestResolver_ColdEqualsWarm(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)
	defer r.Close()

	typ := reflect.TypeOf(person{})

	cold, err := r.Fields(typ)
	require.NoError(t, err)

	// Let the cache admit the entry, then resolve again.
	r.cache.Wait()
	warm, err := r.Fields(typ)
	require.NoError(t, err)

	assert.Equal(t, cold.ModelType(), warm.ModelType())
	require.Equal(t, cold.Len(), warm.Len())
	for i, d := range cold.All() {
		w := warm.All()[i]
		assert.Equal(t, d.Name(), w.Name())
		assert.Equal(t, d.Required(), w.Required())
		assert.Equal(t, d.PreprocessTag(), w.PreprocessTag())
	}
}

func TestResolver_DeclarationErrorsNotCached(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)
	defer r.Close()

	type broken struct {
		Name string `model:"name,bogus"`
	}

	for i := 0; i < 2; i++ {
		_, err := r.Fields(reflect.TypeOf(broken{}))
		require.Error(t, err, "resolution %d", i)
	}
}

func TestResolver_CacheCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	r, err := NewResolver(WithMeterProvider(provider))
	require.NoError(t, err)
	defer r.Close()

	typ := reflect.TypeOf(person{})
	_, err = r.Fields(typ)
	require.NoError(t, err)
	r.cache.Wait()
	_, err = r.Fields(typ)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counters := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					counters[m.Name] += dp.Value
				}
			}
		}
	}

	assert.GreaterOrEqual(t, counters["modelkit.fieldmap.cache.misses"], int64(1))
	assert.GreaterOrEqual(t, counters["modelkit.fieldmap.cache.hits"], int64(1))
}

func TestResolver_BoundedByTTL(t *testing.T) {
	r, err := NewResolver(WithTTL(10 * time.Millisecond))
	require.NoError(t, err)
	defer r.Close()

	typ := reflect.TypeOf(person{})
	_, err = r.Fields(typ)
	require.NoError(t, err)
	r.cache.Wait()

	// After expiry, resolution still succeeds with identical results.
	time.Sleep(25 * time.Millisecond)
	expired, err := r.Fields(typ)
	require.NoError(t, err)
	assert.Equal(t, 5, expired.Len())
}

func TestDefaultResolver_Shared(t *testing.T) {
	a := DefaultResolver()
	b := DefaultResolver()
	assert.Same(t, a, b)
}
