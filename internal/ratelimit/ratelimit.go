// Package ratelimit bounds how often a single client may submit the
// contact form: at most Limit admissions per trailing Window. Two
// implementations exist: an in-process sliding window for single-instance
// deployments and a Redis-backed one for multi-instance deployments.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultWindow is the trailing window a submission counts toward.
	DefaultWindow = 15 * time.Minute
	// DefaultLimit is the number of admissions allowed per window.
	DefaultLimit = 3
)

// Limiter decides admission for one client identifier.
type Limiter interface {
	// Admit reports whether the client may proceed. An admitted call is
	// recorded against the window; a denied call is not.
	Admit(ctx context.Context, clientID string) (bool, error)
}

// MemoryLimiter is a process-local sliding-window limiter. State is lost on
// restart, which is acceptable for a single-instance deployment.
type MemoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	entries map[string][]time.Time
	now     func() time.Time
}

// NewMemoryLimiter creates a limiter with the given window and limit.
// Zero values fall back to the defaults.
func NewMemoryLimiter(window time.Duration, limit int) *MemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &MemoryLimiter{
		window:  window,
		limit:   limit,
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Admit prunes timestamps older than the window, then admits if fewer than
// limit remain. The window slides per-entry rather than resetting in bulk:
// as soon as the oldest admitted timestamp ages out, a new slot opens.
func (l *MemoryLimiter) Admit(_ context.Context, clientID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.entries[clientID][:0]
	for _, ts := range l.entries[clientID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.entries[clientID] = kept
		return false, nil
	}

	l.entries[clientID] = append(kept, now)
	return true, nil
}

// Len returns the number of tracked clients, reported by the health
// endpoint.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Sweep drops clients whose every timestamp has aged past the window,
// keeping the map from growing without bound under churny traffic.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for id, stamps := range l.entries {
		live := false
		for _, ts := range stamps {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.entries, id)
		}
	}
}
