package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/video-aggregator/config"
)

func testEntry(data string) Entry {
	return Entry{Data: []byte(data), StoredAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func newMiniRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisStoreFromClient(rdb)
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()
	s, err := NewMemoryStore(2)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", testEntry(`1`), time.Minute))
	require.NoError(t, s.Set(ctx, "b", testEntry(`2`), time.Minute))

	// touch a so b is least recently used
	_, ok, _ := s.Get(ctx, "a")
	require.True(t, ok)
	require.NoError(t, s.Set(ctx, "c", testEntry(`3`), time.Minute))

	_, ok, _ = s.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStoreDefaultSize(t *testing.T) {
	s, err := NewMemoryStore(0)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr, s := newMiniRedisStore(t)
	require.True(t, s.Enabled())

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	want := testEntry(`{"items":["v1"]}`)
	require.NoError(t, s.Set(ctx, "search|lofi", want, 5*time.Minute))

	got, ok, err := s.Get(ctx, "search|lofi")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, string(want.Data), string(got.Data))
	assert.True(t, want.StoredAt.Equal(got.StoredAt))

	assert.Equal(t, 5*time.Minute, mr.TTL("ytagg:search|lofi"))

	mr.FastForward(6 * time.Minute)
	_, ok, err = s.Get(ctx, "search|lofi")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	ctx := context.Background()
	mr, s := newMiniRedisStore(t)
	require.NoError(t, mr.Set("ytagg:k", "{not json"))

	_, ok, err := s.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisStoreDisabled(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{"empty url", ""},
		{"invalid url", "mysql://nope"},
		{"unreachable", "redis://127.0.0.1:1/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRedisStore(ctx, tt.url)
			assert.False(t, s.Enabled())

			require.NoError(t, s.Set(ctx, "k", testEntry(`1`), time.Minute))
			_, ok, err := s.Get(ctx, "k")
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.NoError(t, s.Close())
		})
	}
}

func TestRedisStoreConnects(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(context.Background(), "redis://"+mr.Addr()+"/0")
	defer s.Close()
	assert.True(t, s.Enabled())
}

func TestTieredStore(t *testing.T) {
	ctx := context.Background()
	_, shared := newMiniRedisStore(t)

	l1a, err := NewMemoryStore(8)
	require.NoError(t, err)
	l1b, err := NewMemoryStore(8)
	require.NoError(t, err)

	// two processes sharing one Redis
	a := NewTieredStore(l1a, shared)
	b := NewTieredStore(l1b, shared)

	entry := testEntry(`{"count":1}`)
	require.NoError(t, a.Set(ctx, "k", entry, time.Minute))

	_, ok, _ := l1b.Get(ctx, "k")
	require.False(t, ok)

	got, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, entry.StoredAt.Equal(got.StoredAt), "shared hit keeps the original write time")

	_, ok, _ = l1b.Get(ctx, "k")
	assert.True(t, ok, "shared hit populates the local tier")
}

func TestTieredStoreWithoutL2(t *testing.T) {
	ctx := context.Background()
	l1, err := NewMemoryStore(8)
	require.NoError(t, err)
	s := NewTieredStore(l1, nil)

	require.NoError(t, s.Set(ctx, "k", testEntry(`1`), time.Minute))
	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := config.DefaultConfig()
	cfg.Cache.RedisURL = "redis://" + mr.Addr() + "/0"

	c, shared, err := NewFromConfig(ctx, cfg, nil)
	require.NoError(t, err)
	defer shared.Close()

	assert.True(t, shared.Enabled())
	assert.IsType(t, &TieredStore{}, c.store)

	cfg.Cache.RedisURL = ""
	c, shared, err = NewFromConfig(ctx, cfg, nil)
	require.NoError(t, err)
	assert.False(t, shared.Enabled())
	assert.IsType(t, &MemoryStore{}, c.store)
}
