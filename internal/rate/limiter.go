// Package rate throttles OTP issuance per email address using an
// expiring in-process counter.
package rate

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Limiter allows up to Limit hits per key within Window.
type Limiter struct {
	mu     sync.Mutex
	c      *gocache.Cache
	limit  int
	window time.Duration
}

// NewLimiter builds a Limiter. limit <= 0 disables throttling.
func NewLimiter(limit int, window time.Duration) *Limiter {
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		c:      gocache.New(window, 2*window),
		limit:  limit,
		window: window,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	if l == nil || l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add only succeeds for a fresh key; Increment preserves the
	// window expiry set by Add.
	if err := l.c.Add(key, int64(1), gocache.DefaultExpiration); err == nil {
		return true
	}
	n, err := l.c.IncrementInt64(key, 1)
	if err != nil {
		l.c.Set(key, int64(1), gocache.DefaultExpiration)
		return true
	}
	return n <= int64(l.limit)
}
