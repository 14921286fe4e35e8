// Package ratelimit provides fixed-window request limiting keyed by caller
// identity. The in-memory limiter suits single-process deployments and is
// reset on restart; the Redis limiter shares windows across processes.
// Neither is a correctness mechanism.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Result reports the outcome of one limiter check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter gates requests per key within a rolling fixed window
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a per-process fixed-window limiter
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter allowing limit requests per
// window per key.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return NewMemoryLimiterWithClock(limit, window, time.Now)
}

// NewMemoryLimiterWithClock creates a limiter with an injectable clock
func NewMemoryLimiterWithClock(limit int, window time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		limit:   limit,
		window:  window,
		now:     now,
	}
}

// Allow records a request against key and reports whether it fits the window
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok || !entry.resetAt.After(now) {
		l.entries[key] = &memoryEntry{count: 1, resetAt: now.Add(l.window)}
		return Result{Allowed: true, Remaining: l.limit - 1}, nil
	}

	entry.count++
	if entry.count > l.limit {
		return Result{Allowed: false, RetryAfter: entry.resetAt.Sub(now)}, nil
	}

	return Result{Allowed: true, Remaining: l.limit - entry.count}, nil
}

// Sweep drops expired windows so idle keys don't accumulate
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, entry := range l.entries {
		if !entry.resetAt.After(now) {
			delete(l.entries, key)
		}
	}
}

// StartSweeping sweeps on the given interval until ctx is cancelled
func (l *MemoryLimiter) StartSweeping(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}
