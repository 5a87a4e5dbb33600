package directory

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/cache"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/retry"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

type CacheConfig struct {
	ListStaleTime  time.Duration
	ListGCTime     time.Duration
	ListRetry      retry.Policy
	FacetStaleTime time.Duration
	FacetGCTime    time.Duration
	FacetRetry     retry.Policy
}

func DefaultCacheConfig() CacheConfig {
	listRetry := retry.DefaultPolicy()
	facetRetry := retry.DefaultPolicy()
	facetRetry.MaxAttempts = 2

	return CacheConfig{
		ListStaleTime:  5 * time.Minute,
		ListGCTime:     10 * time.Minute,
		ListRetry:      listRetry,
		FacetStaleTime: 15 * time.Minute,
		FacetGCTime:    30 * time.Minute,
		FacetRetry:     facetRetry,
	}
}

// Cached wraps a Service with per-key caching, request coalescing and retry
// of remote fetch failures. Invalid filters and malformed responses are never
// retried.
type Cached struct {
	next   Service
	lists  *cache.Cache[[]github.Repository]
	facets *cache.Cache[[]string]
}

func NewCached(next Service, cfg CacheConfig) *Cached {
	cfg.ListRetry.Retryable = errors.IsRemoteFetch
	cfg.FacetRetry.Retryable = errors.IsRemoteFetch

	return &Cached{
		next: next,
		lists: cache.New[[]github.Repository](cache.Options{
			StaleTime: cfg.ListStaleTime,
			GCTime:    cfg.ListGCTime,
			Retry:     cfg.ListRetry,
		}),
		facets: cache.New[[]string](cache.Options{
			StaleTime: cfg.FacetStaleTime,
			GCTime:    cfg.FacetGCTime,
			Retry:     cfg.FacetRetry,
		}),
	}
}

func (c *Cached) FetchRepositories(ctx context.Context, owner string, filters Filters) ([]github.Repository, error) {
	// * Reject bad input before it can occupy a cache slot or a flight
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	repos, err := c.lists.Get(ctx, listKey(owner, filters), func(ctx context.Context) ([]github.Repository, error) {
		return c.next.FetchRepositories(ctx, owner, filters)
	})
	if err != nil {
		return nil, err
	}
	return cloneList(repos), nil
}

func (c *Cached) ListLanguages(ctx context.Context, owner string) ([]string, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	langs, err := c.facets.Get(ctx, facetKey("languages", owner), func(ctx context.Context) ([]string, error) {
		return c.next.ListLanguages(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), langs...), nil
}

func (c *Cached) ListTopics(ctx context.Context, owner string) ([]string, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	topics, err := c.facets.Get(ctx, facetKey("topics", owner), func(ctx context.Context) ([]string, error) {
		return c.next.ListTopics(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), topics...), nil
}

// Invalidate drops every cached list and facet of owner.
func (c *Cached) Invalidate(owner string) int {
	n := c.lists.InvalidatePrefix(listPrefix(owner))
	for _, kind := range []string{"languages", "topics"} {
		if _, ok := c.facets.Peek(facetKey(kind, owner)); ok {
			c.facets.Invalidate(facetKey(kind, owner))
			n++
		}
	}
	logger.Info("invalidated %d cached entries for %s", n, owner)
	return n
}

func listPrefix(owner string) string {
	return "repos|" + owner + "|"
}

func listKey(owner string, f Filters) string {
	return listPrefix(owner) + f.Key()
}

func facetKey(kind, owner string) string {
	return kind + "|" + owner
}

// * Callers get their own slice so they cannot reorder the cached one
func cloneList(repos []github.Repository) []github.Repository {
	out := make([]github.Repository, len(repos))
	for i, r := range repos {
		out[i] = cloneRepository(r)
	}
	return out
}
