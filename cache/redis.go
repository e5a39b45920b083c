package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "ytagg:"

// RedisStore keeps entries in Redis so several processes share results.
// A RedisStore with a nil client is a valid no-op store.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to redisURL. An empty URL, an invalid URL or an
// unreachable server all yield a no-op store so the aggregator keeps working
// on its in-memory tier.
func NewRedisStore(ctx context.Context, redisURL string) *RedisStore {
	if redisURL == "" {
		log.Debug().Msg("redis: no URL configured, shared cache disabled")
		return &RedisStore{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, shared cache disabled")
		return &RedisStore{}
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", opts.Addr).Msg("redis: connection failed, shared cache disabled")
		_ = rdb.Close()
		return &RedisStore{}
	}

	log.Info().Str("addr", opts.Addr).Msg("redis: connected, shared cache enabled")
	return &RedisStore{rdb: rdb}
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Enabled reports whether the store talks to a server
func (s *RedisStore) Enabled() bool {
	return s.rdb != nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	if s.rdb == nil {
		return Entry{}, false, nil
	}

	data, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("redis entry %q: %w", key, err)
	}
	return entry, true, nil
}

// Set writes the entry with ttl as the Redis expiry, so abandoned keys do not
// accumulate on the server
func (s *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if s.rdb == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisKeyPrefix+key, data, ttl).Err()
}

// Close releases the connection pool
func (s *RedisStore) Close() error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
