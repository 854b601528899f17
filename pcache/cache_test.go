package pcache

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCache_Get(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4)
	require.NoError(t, err)
	defer cache.Close()

	key1 := uint64(1)
	key2 := uint64(2)

	// initially, should get nothing as this key was not set
	_, ok := cache.Get(key1)
	assert.False(t, ok)

	// set it now
	ok = cache.Set(key1, 27, 4)
	assert.True(t, ok)
	cache.Wait()

	v, ok := cache.Get(key1)
	assert.True(t, ok)
	assert.Equal(t, 27, v)

	// set a key with a short TTL
	ok = cache.SetWithTTL(key2, 64, 1, 50*time.Millisecond)
	assert.True(t, ok)
	cache.Wait()
	v, ok = cache.Get(key2)
	assert.True(t, ok)
	assert.Equal(t, 64, v)

	time.Sleep(2 * time.Second)
	_, ok = cache.Get(key2)
	assert.False(t, ok)
}

func TestConfig_Materialize(t *testing.T) {
	r, err := Config{MaxCost: 1 << 10, AverageItemCost: 1 << 4}.Materialize()
	require.NoError(t, err)
	defer r.Close()
	_, ok := r.(PCache)
	assert.True(t, ok)

	_, err = Config{MaxCost: 1 << 10}.Materialize()
	assert.Error(t, err)
}

func TestRecordStats(t *testing.T) {
	cache, err := NewPCache(1<<10, 1<<4)
	require.NoError(t, err)
	defer cache.Close()
	cache.Get(uint64(7))
	RecordStats("test", cache)
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheStats.WithLabelValues("test", "misses")))
}
