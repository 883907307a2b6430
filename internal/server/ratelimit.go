package server

import (
	"sync"
	"time"
)

// rateLimiter is a small fixed-window counter keyed by caller. It exists so
// a single node without redis still has backpressure on the checkout
// endpoints; the distributed limiter lives in internal/ratelimit.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
}

type windowCount struct {
	start time.Time
	n     int
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
	}
}

func (r *rateLimiter) Allow(key string) bool {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	wc, ok := r.counts[key]
	if !ok || now.Sub(wc.start) >= r.window {
		r.counts[key] = &windowCount{start: now, n: 1}
		r.gc(now)
		return true
	}
	if wc.n >= r.limit {
		return false
	}
	wc.n++
	return true
}

// gc drops expired windows so the map does not grow with one entry per
// student forever. Called under the lock.
func (r *rateLimiter) gc(now time.Time) {
	if len(r.counts) < 1024 {
		return
	}
	for key, wc := range r.counts {
		if now.Sub(wc.start) >= r.window {
			delete(r.counts, key)
		}
	}
}
