package querycache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/clienthub/pkg/querycache"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := querycache.NewMemoryCache(32, time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Close())
	require.Zero(t, c.Len())
}

func newRedisCache(t *testing.T, ttl time.Duration) (*querycache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := querycache.NewRedisCache(context.Background(), querycache.RedisConfig{
		Addr: mr.Addr(),
		TTL:  ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	_, ok, err := c.Get(ctx, "events:hub:abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "events:hub:abc", []byte(`{"items":[]}`)))
	require.True(t, mr.Exists("clienthub:events:hub:abc"))

	v, ok, err := c.Get(ctx, "events:hub:abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"items":[]}`, string(v))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "events:hub:abc")
	require.NoError(t, err)
	require.False(t, ok, "entry should expire with the configured ttl")

	require.NoError(t, c.Ping(ctx))
}

func TestRedisCacheConnectFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := querycache.NewRedisCache(context.Background(), querycache.RedisConfig{Addr: addr})
	require.Error(t, err)
}

func TestLoaderReadsThrough(t *testing.T) {
	ctx := context.Background()

	var hits, misses atomic.Int32
	l := querycache.NewLoader(querycache.NewMemoryCache(16, time.Minute), querycache.Stats{
		Hit:  func(string) { hits.Add(1) },
		Miss: func(string) { misses.Add(1) },
	})

	var calls atomic.Int32
	fill := func(context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte("page"), nil
	}

	for range 3 {
		v, err := l.Load(ctx, "k", fill)
		require.NoError(t, err)
		require.Equal(t, []byte("page"), v)
	}

	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, int32(1), misses.Load())
	require.Equal(t, int32(2), hits.Load())
}

func TestLoaderDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	l := querycache.NewLoader(querycache.NewMemoryCache(16, time.Minute), querycache.Stats{})

	boom := errors.New("boom")
	_, err := l.Load(ctx, "k", func(context.Context) ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	v, err := l.Load(ctx, "k", func(context.Context) ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	require.Equal(t, []byte("ok"), v)
}

func TestLoaderCollapsesConcurrentFills(t *testing.T) {
	ctx := context.Background()
	l := querycache.NewLoader(querycache.NewMemoryCache(16, time.Minute), querycache.Stats{})

	var calls atomic.Int32
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(8)

	fill := func(context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("v"), nil
	}

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			started.Done()
			_, err := l.Load(ctx, "same", fill)
			return err
		})
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	require.NoError(t, g.Wait())

	// Late arrivals may miss the in-flight call and hit the cache instead,
	// but nobody runs a second fill while the first is outstanding.
	require.Equal(t, int32(1), calls.Load())
}

type failingCache struct{ querycache.Cache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}
func (failingCache) Set(context.Context, string, []byte) error { return errors.New("down") }
func (failingCache) Backend() string                           { return "broken" }

func TestLoaderDegradesOnBackendErrors(t *testing.T) {
	var ops []string
	l := querycache.NewLoader(failingCache{}, querycache.Stats{
		Error: func(backend, op string, err error) { ops = append(ops, backend+":"+op) },
	})

	v, err := l.Load(context.Background(), "k", func(context.Context) ([]byte, error) { return []byte("v"), nil })
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
	require.Equal(t, []string{"broken:get", "broken:set"}, ops)
}
