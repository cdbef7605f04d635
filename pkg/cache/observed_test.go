package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isosort/pkg/config"
	"github.com/matzehuels/isosort/pkg/observability"
)

type cacheEvents struct {
	hits, misses []string
	sets         map[string]int
}

func (e *cacheEvents) OnCacheHit(_ context.Context, kind string)  { e.hits = append(e.hits, kind) }
func (e *cacheEvents) OnCacheMiss(_ context.Context, kind string) { e.misses = append(e.misses, kind) }
func (e *cacheEvents) OnCacheSet(_ context.Context, kind string, size int) {
	if e.sets == nil {
		e.sets = make(map[string]int)
	}
	e.sets[kind] += size
}

func TestInstrumentReportsTraffic(t *testing.T) {
	events := &cacheEvents{}
	observability.SetCacheHooks(events)
	defer observability.Reset()

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	c := Instrument(fc)
	assert.Same(t, c, Instrument(c), "wrapping twice is a no-op")

	k := NewScopedKeyer(nil, "v1:")
	sortKey := k.SortKey("h", SortKeyOpts{})
	artKey := k.ArtifactKey(sortKey, ArtifactKeyOpts{Format: "svg"})

	_, _, _ = c.Get(ctx, sortKey)
	require.NoError(t, c.Set(ctx, sortKey, []byte("12345"), 0))
	_, _, _ = c.Get(ctx, sortKey)
	require.NoError(t, c.Set(ctx, artKey, []byte("<svg/>"), 0))
	_, _, _ = c.Get(ctx, artKey)
	_, _, _ = c.Get(ctx, "elsewhere")

	assert.Equal(t, []string{KindSort, KindArtifact}, events.hits)
	assert.Equal(t, []string{KindSort, "other"}, events.misses)
	assert.Equal(t, map[string]int{KindSort: 5, KindArtifact: 6}, events.sets)
}

type failingCache struct{ NullCache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("boom")
}

func TestInstrumentSkipsFailedGets(t *testing.T) {
	events := &cacheEvents{}
	observability.SetCacheHooks(events)
	defer observability.Reset()

	_, _, err := Instrument(&failingCache{}).Get(context.Background(), "sort:x")
	assert.Error(t, err)
	assert.Empty(t, events.hits)
	assert.Empty(t, events.misses)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, config.CacheConfig{Backend: config.CacheNone})
	require.NoError(t, err)
	_, ok := c.(*observed).Cache.(*NullCache)
	assert.True(t, ok)

	dir := t.TempDir()
	c, err = Open(ctx, config.CacheConfig{Backend: config.CacheFile, Dir: dir})
	require.NoError(t, err)
	fc, ok := c.(*observed).Cache.(*FileCache)
	require.True(t, ok)
	assert.Equal(t, dir, fc.Dir())

	_, err = Open(ctx, config.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}

func TestOpenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Open(ctx, config.CacheConfig{Backend: config.CacheRedis, RedisAddr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

// TestRedisCache runs against a live server when ISOSORT_TEST_REDIS is set,
// e.g. ISOSORT_TEST_REDIS=localhost:6379.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("ISOSORT_TEST_REDIS")
	if addr == "" {
		t.Skip("ISOSORT_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr)
	require.NoError(t, err)
	defer c.Close()

	key := "isosort-test:" + time.Now().Format(time.RFC3339Nano)
	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, []byte("value"), time.Minute))
	data, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", string(data))

	require.NoError(t, c.Delete(ctx, key))
	_, hit, _ = c.Get(ctx, key)
	assert.False(t, hit)
}
