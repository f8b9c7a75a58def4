// pkg/memcache/rate_limiter.go
package mem

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter hands out permission to proceed per client key. The
// in-memory implementation below is only valid for single-node
// deployments; multi-instance setups need a shared-store implementation
// behind this same interface.
type KeyedLimiter interface {
	Allow(key string) bool
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry

	limit rate.Limit
	burst int
	ttl   time.Duration
}

// NewKeyedRateLimiter allows roughly perMinute requests per key with a
// burst of the same size.
func NewKeyedRateLimiter(perMinute int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		ttl:     10 * time.Minute,
	}
}

func (l *KeyedRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()

	if len(l.entries) > 10000 {
		l.sweepLocked()
	}

	return e.limiter.Allow()
}

func (l *KeyedRateLimiter) sweepLocked() {
	cutoff := time.Now().Add(-l.ttl)
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
