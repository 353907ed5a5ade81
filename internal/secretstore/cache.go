package secretstore

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache dereferences secret reference tokens through a Store, guaranteeing
// exactly one fetch per unique token for the lifetime of one render call
// (spec §4.8). It is not reused across renders; the orchestrator constructs
// a fresh Cache per render and discards it on completion.
type Cache struct {
	store Store
	group singleflight.Group

	mu     sync.Mutex
	values map[string][]byte
}

// NewCache wraps store with a per-render dereference cache.
func NewCache(store Store) *Cache {
	return &Cache{store: store, values: make(map[string][]byte)}
}

// Dereference returns the cleartext for reference, fetching it from the
// backing Store at most once even under concurrent callers racing for the
// same token.
func (c *Cache) Dereference(ctx context.Context, reference string) ([]byte, error) {
	c.mu.Lock()
	if v, ok := c.values[reference]; ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(reference, func() (any, error) {
		c.mu.Lock()
		if cached, ok := c.values[reference]; ok {
			c.mu.Unlock()
			return cached, nil
		}
		c.mu.Unlock()

		data, err := c.store.Fetch(ctx, reference)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.values[reference] = data
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Clear discards every cached value. The orchestrator calls this once a
// render completes so no token outlives its render call.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = make(map[string][]byte)
}
