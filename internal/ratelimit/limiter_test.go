package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestLimiter_DeniesAfterLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiterWithClock(func() time.Time { return now })

	for i := 1; i <= 5; i++ {
		if !l.Allow("user:7", 5, time.Minute) {
			t.Fatalf("call %d: Allow = false, want true", i)
		}
	}
	if l.Allow("user:7", 5, time.Minute) {
		t.Errorf("6th call: Allow = true, want false")
	}
}

func TestLimiter_ResetsAfterWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiterWithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		l.Allow("user:7", 5, time.Minute)
	}
	if l.Allow("user:7", 5, time.Minute) {
		t.Fatalf("expected denial at limit")
	}

	now = now.Add(time.Minute + time.Millisecond)
	if !l.Allow("user:7", 5, time.Minute) {
		t.Errorf("after window elapsed: Allow = false, want true")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiterWithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		l.Allow("user:1", 5, time.Minute)
	}
	if !l.Allow("user:2", 5, time.Minute) {
		t.Errorf("user:2 should not be affected by user:1's window")
	}
}

func TestLimiter_ConcurrentCallsNeverExceedLimit(t *testing.T) {
	l := NewLimiter()

	const workers = 50
	const limit = 10

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared", limit, time.Minute) {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("allowed = %d, want exactly %d", allowed, limit)
	}
}

func TestLimiter_SweepDropsExpiredOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiterWithClock(func() time.Time { return now })

	l.Allow("stale", 5, time.Minute)
	now = now.Add(30 * time.Second)
	l.Allow("fresh", 5, time.Minute)

	now = now.Add(45 * time.Second) // "stale" expired, "fresh" still live
	l.Sweep()

	if _, ok := l.limits["stale"]; ok {
		t.Errorf("stale window survived sweep")
	}
	if w, ok := l.limits["fresh"]; !ok {
		t.Errorf("fresh window swept prematurely")
	} else if w.count != 1 {
		t.Errorf("fresh window count = %d, want 1", w.count)
	}
}
