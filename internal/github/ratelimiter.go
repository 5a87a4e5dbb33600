package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/retry"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

type RateLimiter struct {
	mu          sync.Mutex
	remaining   int
	reset       time.Time
	lowWarn     int
	retryAfter  time.Duration
	retryStatus int
	// * pausedUntil holds back the next request after a 429
	pausedUntil time.Time
	now         func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining:   5000,
		reset:       time.Now(),
		lowWarn:     100,
		retryStatus: http.StatusTooManyRequests,
		now:         time.Now,
	}
}

// * waitIfNeeded blocks until the window resets or a 429 pause ends, or until ctx is done
func (r *RateLimiter) waitIfNeeded(ctx context.Context) error {
	r.mu.Lock()
	var waitTime time.Duration
	now := r.now()
	if r.remaining <= 0 && now.Before(r.reset) {
		waitTime = r.reset.Sub(now)
		logger.Warn("[RateLimiter] Rate limit exceeded. Waiting %v until reset at %v", waitTime, r.reset)
	}
	if pause := r.pausedUntil.Sub(now); pause > waitTime {
		waitTime = pause
		logger.Warn("[RateLimiter] Backing off %v after 429", waitTime)
	}
	r.mu.Unlock()

	if waitTime <= 0 {
		return nil
	}
	return retry.Sleep(ctx, waitTime)
}

func (r *RateLimiter) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	r.retryAfter = 0
	if ra := headers.Get("Retry-After"); ra != "" {
		if seconds, err := strconv.Atoi(ra); err == nil {
			r.retryAfter = time.Duration(seconds) * time.Second
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateLimiter] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if err := r.waitIfNeeded(req.Context()); err != nil {
			return nil, err
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resp.Header)

		// * A 429 is returned to the caller; Retry-After only paces the next request
		if resp.StatusCode == r.retryStatus {
			r.mu.Lock()
			r.pausedUntil = r.now().Add(r.retryAfter)
			wait := r.retryAfter
			r.mu.Unlock()

			logger.Warn("[RateLimiter] Received 429, next request held back %v", wait)
		}

		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
