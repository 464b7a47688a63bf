package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by actor. It lives in
// process memory only: counters are lost on restart and are not shared
// between processes, so the limit is best-effort abuse mitigation, not an
// exact global quota.
type Limiter struct {
	mu     sync.Mutex
	limits map[string]*window
	now    func() time.Time
}

type window struct {
	count int
	reset time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: make(map[string]*window),
		now:    time.Now,
	}
}

// NewLimiterWithClock lets tests drive the window expiry.
func NewLimiterWithClock(now func() time.Time) *Limiter {
	l := NewLimiter()
	l.now = now
	return l
}

// Allow reports whether the caller identified by key may proceed, counting
// this call against the window when it does. The check and increment run
// under one lock so concurrent requests cannot both slip past the limit.
func (l *Limiter) Allow(key string, limit int, windowDur time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.limits[key]
	if !ok || now.After(w.reset) {
		l.limits[key] = &window{count: 1, reset: now.Add(windowDur)}
		return true
	}
	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

// Sweep drops expired windows. Correctness does not depend on it; it only
// keeps the map from growing without bound on long-lived processes.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.limits {
		if now.After(w.reset) {
			delete(l.limits, key)
		}
	}
}
