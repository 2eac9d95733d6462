package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter counts failures per key inside a sliding window.
type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.pruneLocked(key, now, window)) >= limit
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.attempts[key] = append(limiter.pruneLocked(key, now, window), now)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	threshold := now.Add(-window)

	kept := 0
	for _, value := range values {
		if value.After(threshold) {
			values[kept] = value
			kept++
		}
	}
	if kept == 0 {
		delete(limiter.attempts, key)
		return nil
	}

	limiter.attempts[key] = values[:kept]
	return values[:kept]
}

// authLimiterKey scopes the client IP by flow so login failures do not
// throttle password-reset requests and vice versa.
func authLimiterKey(c *fiber.Ctx, flow string) string {
	ip := strings.TrimSpace(c.IP())
	if ip == "" {
		ip = "unknown"
	}
	return flow + ":" + ip
}

func (handler *Handler) authThrottled(key string) bool {
	return handler.authLimiter.tooManyRecent(key, handler.now(), maxAuthFailures, authFailureWindow)
}

func (handler *Handler) recordAuthFailure(key string) {
	handler.authLimiter.addFailure(key, handler.now(), authFailureWindow)
}
