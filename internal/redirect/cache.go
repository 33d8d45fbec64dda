package redirect

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"benetrip/pkg/cache"
)

const keyPrefix = "benetrip_redirect_"

// cacheEntry is the stored envelope: the descriptor plus millisecond
// bookkeeping timestamps.
type cacheEntry struct {
	Data      Descriptor `json:"data"`
	Timestamp int64      `json:"timestamp"`
	Expires   int64      `json:"expires"`
}

// Cache stores partner deep-link descriptors keyed by offer id with a
// fixed TTL. Expired entries are evicted lazily on lookup. The mutex
// keeps the TTL check-then-act atomic across goroutines.
type Cache struct {
	mu    sync.Mutex
	store cache.Cache
	now   func() time.Time
}

func NewCache(store cache.Cache) *Cache {
	return NewCacheWithClock(store, time.Now)
}

func NewCacheWithClock(store cache.Cache, now func() time.Time) *Cache {
	return &Cache{store: store, now: now}
}

// Get returns the cached descriptor for an offer, or nil on a miss.
// An entry past its TTL is removed and reported as a miss.
func (c *Cache) Get(ctx context.Context, offerID string) (*Descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.store.Get(ctx, keyPrefix+offerID)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// Unreadable entries are treated as absent and cleared.
		_ = c.store.Del(ctx, keyPrefix+offerID)
		return nil, nil
	}

	if isExpired(entry.Data, c.now()) {
		_ = c.store.Del(ctx, keyPrefix+offerID)
		return nil, nil
	}

	return &entry.Data, nil
}

// Put stores a descriptor, overwriting any existing entry for the same
// offer id.
func (c *Cache) Put(ctx context.Context, offerID string, d Descriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cacheEntry{
		Data:      d,
		Timestamp: d.ObtainedAt.UnixMilli(),
		Expires:   d.ObtainedAt.Add(TTL).UnixMilli(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, keyPrefix+offerID, string(payload), TTL)
}

// ClearAll removes every cached redirect entry. Called once per fresh
// session so stale partner links never cross sessions.
func (c *Cache) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.DelPrefix(ctx, keyPrefix)
}
