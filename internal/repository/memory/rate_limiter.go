package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RateLimiter throttles widget queries per session. Counters live in an
// in-process TTL cache (go-cache handles the periodic sweep and is safe for
// concurrent use); losing them on restart only resets the throttle window,
// never correctness.
type RateLimiter struct {
	cache  *cache.Cache
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		cache:  cache.New(window, 2*window),
		limit:  limit,
		window: window,
	}
}

// Allow records one query for the session and reports whether it is within
// the limit for the current window.
func (r *RateLimiter) Allow(sessionId string) bool {
	// go-cache has no atomic upsert for arbitrary values, but Increment on a
	// pre-seeded int is atomic. Seed on first sight, then increment.
	if err := r.cache.Add(sessionId, int64(1), cache.DefaultExpiration); err == nil {
		return r.limit >= 1
	}
	n, err := r.cache.IncrementInt64(sessionId, 1)
	if err != nil {
		// Entry expired between Add and Increment; start a fresh window.
		r.cache.Set(sessionId, int64(1), cache.DefaultExpiration)
		return r.limit >= 1
	}
	return n <= int64(r.limit)
}

// Remaining returns how many queries the session may still issue in the
// current window.
func (r *RateLimiter) Remaining(sessionId string) int {
	if x, found := r.cache.Get(sessionId); found {
		if n, ok := x.(int64); ok {
			remaining := r.limit - int(n)
			if remaining < 0 {
				return 0
			}
			return remaining
		}
	}
	return r.limit
}
