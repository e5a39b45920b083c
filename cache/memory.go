package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemorySize is used when a non-positive size is requested
const DefaultMemorySize = 1024

// MemoryStore is an in-process LRU store. It is safe for concurrent use;
// concurrent writers to one key resolve as last write wins.
type MemoryStore struct {
	entries *lru.Cache[string, Entry]
}

// NewMemoryStore creates an LRU store holding at most size entries
func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}
	entries, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &MemoryStore{entries: entries}, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	entry, ok := s.entries.Get(key)
	return entry, ok, nil
}

// Set stores the entry. The ttl is not enforced here; the LRU bound caps memory.
func (s *MemoryStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	s.entries.Add(key, entry)
	return nil
}

// Len returns the number of entries currently held
func (s *MemoryStore) Len() int {
	return s.entries.Len()
}
