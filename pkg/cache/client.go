package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with per-entry TTL. Implementations must be
// safe for concurrent use.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	// DelPrefix removes every key starting with prefix.
	DelPrefix(ctx context.Context, prefix string) error
}
