package registry

import (
	"context"
	"sync"
)

// Cache holds the current KnownSet snapshot for a long-running process.
// KnownSets themselves are immutable after build; the cache only swaps the
// snapshot wholesale after a full re-fetch. Callers take a snapshot, run the
// policies against it, and invalidate after a successful registration.
type Cache struct {
	store       Store
	dim         int
	indexAtSize int

	mu    sync.RWMutex
	known *KnownSet
}

// NewCache creates a cache over the given store and embedding dimension.
func NewCache(store Store, dim int) *Cache {
	return &Cache{store: store, dim: dim}
}

// EnableIndexAt makes Refresh build an HNSW index once the registry reaches
// n entries. Zero disables indexing.
func (c *Cache) EnableIndexAt(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexAtSize = n
}

// Snapshot returns the current KnownSet, fetching on first use. The returned
// set must be treated as read-only.
func (c *Cache) Snapshot(ctx context.Context) (*KnownSet, error) {
	c.mu.RLock()
	known := c.known
	c.mu.RUnlock()

	if known != nil {
		return known, nil
	}

	known, _, err := c.Refresh(ctx)
	return known, err
}

// Refresh re-fetches all records and rebuilds the KnownSet wholesale.
// Per-record parse warnings are returned for the caller to log; a store-level
// fetch failure aborts and leaves the previous snapshot unchanged.
func (c *Cache) Refresh(ctx context.Context) (*KnownSet, []*EncodingParseError, error) {
	records, err := c.store.FetchAll(ctx)
	if err != nil {
		return nil, nil, &StoreError{Op: "fetch", Err: err}
	}

	known, warnings := BuildKnownSet(records, c.dim)

	c.mu.Lock()
	if c.indexAtSize > 0 && known.Len() >= c.indexAtSize {
		known.EnableIndex()
	}
	c.known = known
	c.mu.Unlock()

	return known, warnings, nil
}

// Invalidate drops the cached snapshot so the next Snapshot re-fetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.known = nil
	c.mu.Unlock()
}
