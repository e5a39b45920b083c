package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// TieredStore checks a fast local tier first, then a shared tier. A shared
// hit is copied into the local tier.
type TieredStore struct {
	l1 Store
	l2 Store
}

// NewTieredStore combines l1 and l2. A nil l2 makes it behave like l1.
func NewTieredStore(l1, l2 Store) *TieredStore {
	return &TieredStore{l1: l1, l2: l2}
}

func (s *TieredStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	if entry, ok, err := s.l1.Get(ctx, key); err == nil && ok {
		return entry, true, nil
	}
	if s.l2 == nil {
		return Entry{}, false, nil
	}

	entry, ok, err := s.l2.Get(ctx, key)
	if err != nil || !ok {
		return Entry{}, false, err
	}

	// The shared copy keeps its original write time
	if err := s.l1.Set(ctx, key, entry, 0); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache: L1 populate failed")
	}
	return entry, true, nil
}

// Set writes both tiers. A shared tier failure is logged and returned, the
// local write still stands.
func (s *TieredStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	if err := s.l1.Set(ctx, key, entry, ttl); err != nil {
		return err
	}
	if s.l2 == nil {
		return nil
	}
	if err := s.l2.Set(ctx, key, entry, ttl); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache: L2 set failed")
		return err
	}
	return nil
}
