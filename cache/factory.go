package cache

import (
	"context"

	"github.com/researchaccelerator-hub/video-aggregator/config"
	"github.com/researchaccelerator-hub/video-aggregator/metrics"
)

// NewFromConfig builds the cache described by cfg: an LRU tier, backed by
// Redis when cache.redis_url is set and reachable. The returned RedisStore
// must be closed by the caller; it is a no-op store when Redis is disabled.
func NewFromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics, opts ...Option) (*Cache, *RedisStore, error) {
	mem, err := NewMemoryStore(cfg.Cache.Size)
	if err != nil {
		return nil, nil, err
	}

	shared := NewRedisStore(ctx, cfg.Cache.RedisURL)

	var store Store = mem
	if shared.Enabled() {
		store = NewTieredStore(mem, shared)
	}

	opts = append([]Option{WithMetrics(m)}, opts...)
	return New(store, cfg.TTL, opts...), shared, nil
}
