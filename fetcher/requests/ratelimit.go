package requests

import (
	"context"
	"sync"
	"time"

	"riftrewind/pkg/config"
)

// Single riot rate limiting.
type RiotLimit struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// Full riot rate limit, containing all the constraints.
type RateLimiter struct {
	windows []*RiotLimit
	mu      sync.Mutex
}

// Create a instance of the rate limiter.
func NewRateLimiter(limits config.LimitsConfiguration) *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		windows: []*RiotLimit{
			{
				limit:         limits.Lower.Count,
				resetInterval: limits.Lower.ResetInterval,
				lastReset:     now,
			},
			{
				limit:         limits.Higher.Count,
				resetInterval: limits.Higher.ResetInterval,
				lastReset:     now,
			},
		},
	}
}

// Reset the windows that have expired.
func (r *RateLimiter) resetCounts(now time.Time) {
	for _, window := range r.windows {
		if now.Sub(window.lastReset) >= window.resetInterval {
			window.count = 0
			window.lastReset = now
		}
	}
}

// Return how long until every window has room, zero if all have.
func (r *RateLimiter) windowsWait(now time.Time) time.Duration {
	var wait time.Duration
	for _, window := range r.windows {
		if window.count < window.limit {
			continue
		}

		if till := window.resetInterval - now.Sub(window.lastReset); till > wait {
			wait = till
		}
	}
	return wait
}

// Try to take a slot, returning the time to wait when it's not possible.
func (r *RateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.resetCounts(now)

	if wait := r.windowsWait(now); wait > 0 {
		return wait
	}

	for _, window := range r.windows {
		window.count++
	}
	return 0
}

// Wait until the next request is allowed by every window.
func (r *RateLimiter) WaitApi(ctx context.Context) error {
	for {
		wait := r.reserve()
		if wait <= 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
