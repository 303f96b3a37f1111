package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Idle limiters are dropped after this long so the map does not grow with
// every user ever seen.
const limiterIdleTTL = 30 * time.Minute

// RateLimiter provides per-key token bucket rate limiting.
type RateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	limits  map[string]*entry
	now     func() time.Time
	lastGC  time.Time
	idleTTL time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per key with
// the given burst. Non-positive values fall back to 10/s with burst 20.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		limits:  make(map[string]*entry),
		now:     time.Now,
		idleTTL: limiterIdleTTL,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastGC) > rl.idleTTL {
		for k, e := range rl.limits {
			if now.Sub(e.lastSeen) > rl.idleTTL {
				delete(rl.limits, k)
			}
		}
		rl.lastGC = now
	}

	e, ok := rl.limits[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limits[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Len returns the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}
