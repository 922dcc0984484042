package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func newTestLimiter(maxRequests int, window time.Duration) (*Limiter, *time.Time) {
	l := New(maxRequests, window)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowExactBudget(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, remaining := l.Allow("client")
		if !allowed {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
		if want := 3 - i - 1; remaining != want {
			t.Errorf("request %d remaining = %d, want %d", i+1, remaining, want)
		}
	}

	allowed, remaining := l.Allow("client")
	if allowed {
		t.Error("4th request allowed, want denied")
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
}

func TestAllowWindowElapses(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	l.Allow("client")
	l.Allow("client")
	if allowed, _ := l.Allow("client"); allowed {
		t.Fatal("over-budget request allowed")
	}

	*now = now.Add(61 * time.Second)
	if allowed, _ := l.Allow("client"); !allowed {
		t.Error("request denied after window elapsed")
	}
}

func TestAllowIsolatesClients(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Allow("a")
	if allowed, _ := l.Allow("b"); !allowed {
		t.Error("client b throttled by client a's budget")
	}
}

func TestAllowConcurrentSingleClient(t *testing.T) {
	l := New(10, time.Minute)

	var wg sync.WaitGroup
	admitted := make(chan struct{}, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("client"); allowed {
				admitted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for range admitted {
		count++
	}
	if count != 10 {
		t.Errorf("admitted %d concurrent requests, want exactly 10", count)
	}
}

func TestSweepDropsIdleClients(t *testing.T) {
	l, now := newTestLimiter(5, time.Minute)

	l.Allow("idle")
	*now = now.Add(2 * time.Minute)
	l.sweep()

	l.mu.Lock()
	_, exists := l.clients["idle"]
	l.mu.Unlock()
	if exists {
		t.Error("idle client not pruned")
	}
}
