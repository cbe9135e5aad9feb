package querycache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache stores serialized query results by key.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for the cache's configured TTL.
	Set(ctx context.Context, key string, value []byte) error
	// Backend names the implementation for metrics labels.
	Backend() string
	Close() error
}

// Stats receives cache outcomes. Any field may be nil.
type Stats struct {
	Hit   func(backend string)
	Miss  func(backend string)
	Error func(backend, op string, err error)
}

// Loader reads through a Cache and collapses concurrent loads of the same key
// into a single call of the fill function.
type Loader struct {
	cache Cache
	stats Stats
	group singleflight.Group
	// FillTimeout bounds a shared fill so one cancelled caller cannot fail
	// every other caller waiting on the same key.
	FillTimeout time.Duration
}

// NewLoader wraps cache.
func NewLoader(cache Cache, stats Stats) *Loader {
	return &Loader{cache: cache, stats: stats, FillTimeout: 10 * time.Second}
}

// Load returns the value for key, calling fill on a miss and storing its
// result. Cache backend failures degrade to a miss; only fill errors are
// returned.
func (l *Loader) Load(
	ctx context.Context,
	key string,
	fill func(ctx context.Context) ([]byte, error),
) ([]byte, error) {
	backend := l.cache.Backend()

	if v, ok, err := l.cache.Get(ctx, key); err != nil {
		l.reportError(backend, "get", err)
	} else if ok {
		if l.stats.Hit != nil {
			l.stats.Hit(backend)
		}
		return v, nil
	}
	if l.stats.Miss != nil {
		l.stats.Miss(backend)
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.FillTimeout)
		defer cancel()

		val, err := fill(fillCtx)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(fillCtx, key, val); err != nil {
			l.reportError(backend, "set", err)
		}
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) reportError(backend, op string, err error) {
	if l.stats.Error != nil {
		l.stats.Error(backend, op, err)
	}
}
