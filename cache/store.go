// Package cache implements time-bounded reuse of aggregate results.
//
// Stores hold opaque entries stamped with the time they were written.
// Staleness is decided by Cache at read time against the per-kind TTL;
// nothing sweeps entries in the background.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is a serialized value plus its write time
type Entry struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"stored_at"`
}

// Store is a key/value backend for cache entries. Get reports ok=false for
// a missing key; errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (entry Entry, ok bool, err error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
}
