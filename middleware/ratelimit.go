package middleware

import (
	"errors"
	"sync"

	"golang.org/x/time/rate"

	"github.com/yshengliao/relay/router"
)

// ErrRateLimited is returned by rate-limit middleware when a dispatch
// exceeds the configured rate. The host maps it to its own 429 handling.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit returns middleware backed by a single token bucket, shared
// by every route the middleware instance is attached to.
func RateLimit(limit rate.Limit, burst int) router.Middleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(rt *router.Route) error {
		if !limiter.Allow() {
			return ErrRateLimited
		}
		return nil
	}
}

// LimiterStore keeps one token bucket per route pattern, so routes
// sharing a store are limited independently.
type LimiterStore struct {
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimiterStore creates a store handing out per-pattern limiters with
// the given rate and burst.
func NewLimiterStore(limit rate.Limit, burst int) *LimiterStore {
	return &LimiterStore{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Middleware returns middleware that draws from the bucket keyed by the
// dispatched route's pattern.
func (s *LimiterStore) Middleware() router.Middleware {
	return func(rt *router.Route) error {
		if !s.allow(rt.Pattern()) {
			return ErrRateLimited
		}
		return nil
	}
}

func (s *LimiterStore) allow(key string) bool {
	s.mu.Lock()
	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	s.mu.Unlock()
	return limiter.Allow()
}

// Reset drops the bucket for key so the next dispatch starts a fresh
// burst.
func (s *LimiterStore) Reset(key string) {
	s.mu.Lock()
	delete(s.limiters, key)
	s.mu.Unlock()
}
