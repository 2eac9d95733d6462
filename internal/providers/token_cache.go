package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// DefaultTokenRefreshMargin is how long before expiry a cached token stops being reused.
const DefaultTokenRefreshMargin = 60 * time.Second

var errEmptyToken = errors.New("token endpoint returned an empty token")

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// TokenFetcher returns a new access token and its lifetime.
type TokenFetcher func(ctx context.Context) (string, time.Duration, error)

// TokenCache holds one bearer token behind an atomic pointer to an immutable
// value. Concurrent callers that observe a stale token may each fetch a new
// one; the last store wins and every fetched token stays valid.
type TokenCache struct {
	current atomic.Pointer[cachedToken]
	margin  time.Duration
}

func NewTokenCache(margin time.Duration) *TokenCache {
	if margin < 0 {
		margin = 0
	}
	return &TokenCache{margin: margin}
}

func (cache *TokenCache) Get(ctx context.Context, now time.Time, fetch TokenFetcher) (string, error) {
	if token := cache.current.Load(); token != nil && now.Before(token.expiresAt.Add(-cache.margin)) {
		return token.value, nil
	}

	value, lifetime, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", errEmptyToken
	}
	cache.current.Store(&cachedToken{value: value, expiresAt: now.Add(lifetime)})
	return value, nil
}

// Invalidate drops the cached token so the next Get fetches a fresh one.
func (cache *TokenCache) Invalidate() {
	cache.current.Store(nil)
}
