package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts requests per client key within a sliding window. Used to
// slow down password guessing on the login endpoint.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	go l.cleanupLoop()

	return l
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		windowStart := time.Now().Add(-l.window)
		for key, times := range l.requests {
			valid := prune(times, windowStart)
			if len(valid) == 0 {
				delete(l.requests, key)
			} else {
				l.requests[key] = valid
			}
		}
		l.mu.Unlock()
	}
}

func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.requests[key] = prune(l.requests[key], now.Add(-l.window))

	if len(l.requests[key]) >= l.limit {
		return false
	}

	l.requests[key] = append(l.requests[key], now)
	return true
}

// Remaining reports how many attempts the key has left in the window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	valid := prune(l.requests[key], time.Now().Add(-l.window))
	if remaining := l.limit - len(valid); remaining > 0 {
		return remaining
	}
	return 0
}

func prune(times []time.Time, windowStart time.Time) []time.Time {
	var valid []time.Time
	for _, t := range times {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}
