package cache

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/video-aggregator/metrics"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// TTLFunc returns the lifetime of entries of a resource kind. A
// non-positive TTL disables caching for that kind.
type TTLFunc func(kind youtube.ResourceKind) time.Duration

// Cache applies the per-kind staleness policy on top of a Store
type Cache struct {
	store   Store
	ttl     TTLFunc
	now     func() time.Time
	metrics *metrics.Metrics
}

// Option customizes a Cache
type Option func(*Cache)

// WithClock replaces time.Now, used by tests to move past a TTL
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithMetrics counts hits and misses per kind
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New creates a Cache over store
func New(store Store, ttl TTLFunc, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds the cache key for a kind and its request parameters.
// Parameters are trimmed and escaped so that "a|b" and ("a", "b") differ.
func Key(kind youtube.ResourceKind, params ...string) string {
	var b strings.Builder
	b.WriteString(kind.String())
	for _, p := range params {
		b.WriteByte('|')
		b.WriteString(url.QueryEscape(strings.TrimSpace(p)))
	}
	return b.String()
}

// lookup returns the raw entry for key when it exists and is not older than
// the kind's TTL
func (c *Cache) lookup(ctx context.Context, kind youtube.ResourceKind, key string) (json.RawMessage, bool) {
	ttl := c.ttl(kind)
	if ttl <= 0 {
		return nil, false
	}

	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: read failed, treating as miss")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	age := c.now().Sub(entry.StoredAt)
	if age > ttl {
		log.Debug().Str("key", key).Dur("age", age).Dur("ttl", ttl).Msg("cache: entry stale")
		return nil, false
	}
	return entry.Data, true
}

func (c *Cache) write(ctx context.Context, kind youtube.ResourceKind, key string, data []byte) {
	ttl := c.ttl(kind)
	if ttl <= 0 {
		return
	}

	entry := Entry{Data: data, StoredAt: c.now()}
	if err := c.store.Set(ctx, key, entry, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: write failed")
	}
}

// Get returns the cached value for key if it is fresh
func Get[T any](ctx context.Context, c *Cache, kind youtube.ResourceKind, key string) (T, bool) {
	var value T

	data, ok := c.lookup(ctx, kind, key)
	if !ok {
		c.metrics.CacheMiss(kind.String())
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: corrupt entry, treating as miss")
		c.metrics.CacheMiss(kind.String())
		var zero T
		return zero, false
	}

	c.metrics.CacheHit(kind.String())
	log.Debug().Str("key", key).Msg("cache: hit")
	return value, true
}

// Put overwrites the entry for key with value, stamped with the current time
func Put[T any](ctx context.Context, c *Cache, kind youtube.ResourceKind, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: failed to encode value")
		return
	}
	c.write(ctx, kind, key, data)
}
