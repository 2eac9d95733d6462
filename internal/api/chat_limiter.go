package api

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	chatRequestsPerMinute = 10
	chatBurst             = 5
)

// chatLimiter keeps one token bucket per user for the AI coach.
type chatLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newChatLimiter(perMinute int, burst int) *chatLimiter {
	return &chatLimiter{
		limiters: make(map[uint]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
	}
}

func (limiter *chatLimiter) allow(userID uint) bool {
	limiter.mu.Lock()
	bucket, ok := limiter.limiters[userID]
	if !ok {
		bucket = rate.NewLimiter(limiter.limit, limiter.burst)
		limiter.limiters[userID] = bucket
	}
	limiter.mu.Unlock()

	return bucket.Allow()
}

func (limiter *chatLimiter) forget(userID uint) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.limiters, userID)
}
