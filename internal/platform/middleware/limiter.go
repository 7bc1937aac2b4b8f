// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/stockroom/internal/platform/constants"
)

// # Failed Authentication Limiting

// FailureLimiter counts failed authentication attempts per key over a fixed
// window. Keys combine the client address with a prefix of the presented
// credential.
type FailureLimiter interface {
	// Blocked reports whether key used up its attempts, and how long until
	// the window resets.
	Blocked(context context.Context, key string) (bool, time.Duration, error)

	// RecordFailure counts one failed attempt for key.
	RecordFailure(context context.Context, key string) error
}

// FailureKey builds the limiter key for a client and a presented token.
//
// Every HS256 token issued here starts with the same encoded header
// ("eyJhbGciOi..."), so for well-formed tokens the prefix never separates
// credentials and the key is effectively the client address. The signature
// segment is not used: a caller picks it freely and would get a fresh
// counter per attempt.
func FailureKey(clientIP, token string) string {
	prefix := token
	if len(prefix) > constants.FailedAuthTokenPrefix {
		prefix = prefix[:constants.FailedAuthTokenPrefix]
	}
	return clientIP + "|" + prefix
}

// MemoryFailureLimiter keeps counters in process memory. Counters are not
// shared between instances; use [RedisFailureLimiter] behind a load balancer.
type MemoryFailureLimiter struct {
	counts      *gocache.Cache
	maxAttempts int
	window      time.Duration
}

// NewMemoryFailureLimiter creates a limiter allowing maxAttempts failures per window.
func NewMemoryFailureLimiter(maxAttempts int, window time.Duration) *MemoryFailureLimiter {
	return &MemoryFailureLimiter{
		counts:      gocache.New(window, window),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Blocked implements [FailureLimiter].
func (limiter *MemoryFailureLimiter) Blocked(_ context.Context, key string) (bool, time.Duration, error) {
	value, expiresAt, found := limiter.counts.GetWithExpiration(key)
	if !found {
		return false, 0, nil
	}

	count, _ := value.(int)
	if count < limiter.maxAttempts {
		return false, 0, nil
	}
	return true, time.Until(expiresAt), nil
}

// RecordFailure implements [FailureLimiter]. The window starts at the first
// failure and is not extended by later ones.
func (limiter *MemoryFailureLimiter) RecordFailure(_ context.Context, key string) error {
	if err := limiter.counts.Add(key, 1, limiter.window); err == nil {
		return nil
	}

	// The entry may have expired between Add and IncrementInt.
	if _, err := limiter.counts.IncrementInt(key, 1); err != nil {
		limiter.counts.Set(key, 1, limiter.window)
	}
	return nil
}

// RedisFailureLimiter shares counters between API instances.
type RedisFailureLimiter struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewRedisFailureLimiter creates a limiter allowing maxAttempts failures per window.
func NewRedisFailureLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *RedisFailureLimiter {
	return &RedisFailureLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Blocked implements [FailureLimiter].
func (limiter *RedisFailureLimiter) Blocked(context context.Context, key string) (bool, time.Duration, error) {
	redisKey := constants.RedisPrefixFailedAuth + key

	count, err := limiter.client.Get(context, redisKey).Int64()
	if errors.Is(err, redis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("middleware: failed to read auth failures: %w", err)
	}
	if count < limiter.maxAttempts {
		return false, 0, nil
	}

	ttl, err := limiter.client.PTTL(context, redisKey).Result()
	if err != nil {
		return true, limiter.window, nil
	}

	// A counter without a TTL would block forever; give it a window.
	if ttl < 0 {
		if err := limiter.client.ExpireNX(context, redisKey, limiter.window).Err(); err != nil {
			return true, limiter.window, fmt.Errorf("middleware: failed to set auth failure window: %w", err)
		}
		return true, limiter.window, nil
	}
	return true, ttl, nil
}

// RecordFailure implements [FailureLimiter]. INCR and EXPIRE NX travel in
// one MULTI so a counter never exists without its window, and later
// failures do not extend it.
func (limiter *RedisFailureLimiter) RecordFailure(context context.Context, key string) error {
	redisKey := constants.RedisPrefixFailedAuth + key

	_, err := limiter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Incr(context, redisKey)
		pipe.ExpireNX(context, redisKey, limiter.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("middleware: failed to record auth failure: %w", err)
	}
	return nil
}
