package server

import (
	"sync"
	"time"
)

// RateLimiter admits or refuses a request for a client key. Implementations
// must be safe for concurrent use.
type RateLimiter interface {
	Allow(key string) bool
}

// Unlimited admits everything. Used in tests and when limiting is disabled.
type Unlimited struct{}

func (Unlimited) Allow(string) bool { return true }

// WindowLimiter is a process-local sliding-window limiter: at most max
// requests per key within the trailing window. State lives in memory, so a
// restart forgets all counters.
type WindowLimiter struct {
	window time.Duration
	max    int

	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

// NewWindowLimiter creates a limiter allowing max requests per window.
func NewWindowLimiter(window time.Duration, max int) *WindowLimiter {
	return &WindowLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *WindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}
