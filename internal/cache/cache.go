// Package cache holds query results for a staleness window, coalesces
// concurrent loads of the same key and retries transient load failures.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/retry"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const defaultMaxEntries = 256

type Options struct {
	// * StaleTime is how long a loaded value is served without a reload
	StaleTime time.Duration
	// * GCTime purges entries that were not read for this long
	GCTime     time.Duration
	MaxEntries int
	Retry      retry.Policy
}

type LoadFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

type flight struct {
	id      string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type Cache[V any] struct {
	opts    Options
	entries *expirable.LRU[string, entry[V]]
	group   singleflight.Group
	now     func() time.Time

	mu      sync.Mutex
	flights map[string]*flight
	seq     uint64
	loads   int
}

func New[V any](opts Options) *Cache[V] {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = defaultMaxEntries
	}

	return &Cache[V]{
		opts:    opts,
		entries: expirable.NewLRU[string, entry[V]](opts.MaxEntries, nil, opts.GCTime),
		now:     time.Now,
		flights: make(map[string]*flight),
	}
}

// Get returns the fresh value stored under key, or loads it. Concurrent calls
// for the same key share one load. A caller leaving early (ctx done) gets a
// RemoteFetch error wrapping ctx.Err() and does not fail the others; once every caller of a load has left, the load's context
// is cancelled so pending retries stop.
func (c *Cache[V]) Get(ctx context.Context, key string, load LoadFunc[V]) (V, error) {
	if v, ok := c.fresh(key); ok {
		logger.Debug("cache hit for %s", key)
		return v, nil
	}

	f := c.join(ctx, key)
	defer c.leave(key, f)

	ch := c.group.DoChan(f.id, func() (any, error) {
		return c.load(f.ctx, key, load)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		var zero V
		return zero, errors.RemoteFetch(0, "caller left before the fetch for "+key+" completed", ctx.Err())
	}
}

// Peek returns the stored value even when stale, without loading.
func (c *Cache[V]) Peek(key string) (V, bool) {
	e, ok := c.entries.Peek(key)
	return e.value, ok
}

func (c *Cache[V]) Invalidate(key string) {
	c.entries.Remove(key)
}

// InvalidatePrefix drops every entry whose key starts with prefix.
func (c *Cache[V]) InvalidatePrefix(prefix string) int {
	removed := 0
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			if c.entries.Remove(key) {
				removed++
			}
		}
	}
	return removed
}

func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

// Loads reports how many loads ran to completion, successful or not.
func (c *Cache[V]) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

func (c *Cache[V]) fresh(key string) (V, bool) {
	e, ok := c.entries.Get(key)
	if !ok || c.now().Sub(e.fetchedAt) >= c.opts.StaleTime {
		var zero V
		return zero, false
	}

	// * Re-adding refreshes the retention TTL so only idle entries are purged
	c.entries.Add(key, e)
	return e.value, true
}

func (c *Cache[V]) load(ctx context.Context, key string, load LoadFunc[V]) (any, error) {
	// * Another flight may have stored the value while this one was queued
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	v, err := retry.Do[V](ctx, c.opts.Retry, load)

	c.mu.Lock()
	c.loads++
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}

	c.entries.Add(key, entry[V]{value: v, fetchedAt: c.now()})
	return v, nil
}

func (c *Cache[V]) join(ctx context.Context, key string) *flight {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.flights[key]
	if !ok {
		c.seq++
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{
			id:     key + "#" + strconv.FormatUint(c.seq, 10),
			ctx:    fctx,
			cancel: cancel,
		}
		c.flights[key] = f
	}
	f.waiters++
	return f
}

func (c *Cache[V]) leave(key string, f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}

	f.cancel()
	if c.flights[key] == f {
		delete(c.flights, key)
	}
}
