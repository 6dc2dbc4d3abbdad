// Package ratelimit implements per-identity fixed-window admission control.
//
// Counters are process-local and ephemeral: they live in memory, are rebuilt
// from zero on restart, and are never shared across instances. Scaling out
// horizontally means moving the counters to a shared store (e.g. Redis);
// the Limiter interface is the seam for that.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a request from the given identity is admitted.
type Limiter interface {
	// Allow records one request for the identity and reports whether it is
	// within quota. When the request is rejected, retryAfter is the time
	// remaining until the current window elapses.
	Allow(identity string) (allowed bool, retryAfter time.Duration)
}

// window is one identity's counter for the current fixed window.
type window struct {
	count int
	start time.Time
}

// FixedWindowLimiter admits up to limit requests per identity within each
// window. The increment-and-check is serialized under one mutex so
// concurrent bursts from the same identity cannot undercount.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewFixedWindowLimiter creates a limiter admitting limit requests per
// identity per window.
func NewFixedWindowLimiter(limit int, windowLen time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		panic("limit must be positive")
	}
	if windowLen <= 0 {
		panic("window must be positive")
	}

	return &FixedWindowLimiter{
		limit:   limit,
		window:  windowLen,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Ensure FixedWindowLimiter implements Limiter
var _ Limiter = (*FixedWindowLimiter)(nil)

// Allow implements Limiter.Allow
func (l *FixedWindowLimiter) Allow(identity string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identity]
	if !ok || now.Sub(w.start) >= l.window {
		// First request for this identity, or the previous window elapsed.
		w = &window{start: now}
		l.windows[identity] = w
	}

	w.count++
	if w.count > l.limit {
		return false, w.start.Add(l.window).Sub(now)
	}
	return true, 0
}

// setClock overrides the time source. Test hook.
func (l *FixedWindowLimiter) setClock(now func() time.Time) {
	l.now = now
}
