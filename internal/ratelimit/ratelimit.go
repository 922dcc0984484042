// Package ratelimit provides per-client sliding-window admission
// control for the scoring API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter tracks request timestamps per client id inside a trailing
// window. Admission (prune, check, record) is a single critical
// section so concurrent requests from one client cannot race past the
// limit.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu      sync.Mutex
	clients map[string][]time.Time

	now func() time.Time
}

func New(maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		clients:     make(map[string][]time.Time),
		now:         time.Now,
	}
}

// Allow admits or rejects a request from clientID and returns the
// remaining budget within the current window.
func (l *Limiter) Allow(clientID string) (allowed bool, remaining int) {
	now := l.now()
	windowStart := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.clients[clientID][:0]
	for _, t := range l.clients[clientID] {
		if t.After(windowStart) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.maxRequests {
		l.clients[clientID] = kept
		return false, 0
	}

	l.clients[clientID] = append(kept, now)
	return true, l.maxRequests - len(kept) - 1
}

// Limit returns the configured request budget per window.
func (l *Limiter) Limit() int {
	return l.maxRequests
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Run prunes idle clients until ctx is cancelled, bounding memory for
// long-lived processes.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	windowStart := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, stamps := range l.clients {
		idle := true
		for _, t := range stamps {
			if t.After(windowStart) {
				idle = false
				break
			}
		}
		if idle {
			delete(l.clients, id)
		}
	}
}
