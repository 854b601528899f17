package pcache

import (
	"fmt"
	"time"

	"quarteto/resource"

	"github.com/dgraph-io/ristretto"
)

// Config sizes a cache by total cost. With program text as the cost
// function, MaxCost is roughly the number of source bytes kept.
type Config struct {
	MaxCost         int64
	AverageItemCost int64
}

var _ resource.Config = Config{}

func (c Config) Materialize() (resource.Resource, error) {
	if c.MaxCost <= 0 || c.AverageItemCost <= 0 {
		return nil, fmt.Errorf("cache costs must be positive, got max: %d, average: %d", c.MaxCost, c.AverageItemCost)
	}
	pc, err := NewPCache(c.MaxCost, c.AverageItemCost)
	if err != nil {
		return nil, err
	}
	return pc, nil
}

// PCache is an in-process cache. The engine keeps parsed programs in it,
// keyed by a hash of the vocabulary and source text.
type PCache struct {
	Cache *ristretto.Cache
}

// NewPCache creates a new instance of PCache
// https://pkg.go.dev/github.com/dgraph-io/ristretto#Config
func NewPCache(maxCost int64, averageItemCost int64) (PCache, error) {
	expectedMaxItems := maxCost / averageItemCost
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * expectedMaxItems,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return PCache{}, err
	}
	return PCache{
		Cache: cache,
	}, nil
}

func (pc PCache) Set(key, value interface{}, cost int64) bool {
	return pc.Cache.Set(key, value, cost)
}

func (pc PCache) SetWithTTL(key, value interface{}, cost int64, ttl time.Duration) bool {
	return pc.Cache.SetWithTTL(key, value, cost, ttl)
}

func (pc PCache) Get(key interface{}) (interface{}, bool) {
	return pc.Cache.Get(key)
}

// Wait blocks until buffered writes are applied.
func (pc PCache) Wait() {
	pc.Cache.Wait()
}

func (pc PCache) Close() error {
	pc.Cache.Close()
	return nil
}

func (pc PCache) Type() resource.Type {
	return resource.ProgramCache
}

var _ resource.Resource = PCache{}
