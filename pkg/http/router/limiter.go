package router

import (
	"sync"

	"golang.org/x/time/rate"
)

type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLimiterRegistry(limit rate.Limit, burst int) *limiterRegistry {
	return &limiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (reg *limiterRegistry) get(key string) *rate.Limiter {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	limiter, ok := reg.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(reg.limit, reg.burst)
		reg.limiters[key] = limiter
	}
	return limiter
}
