// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"math"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/respond"
)

// # Rate Limiting

/*
RateLimit applies a token bucket per client address.

Description: Buckets live in a go-cache table and are evicted after
constants.RateLimitClientTTL without traffic. A rejected request gets 429
with Retry-After set to the wait until the next token.

Parameters:
  - requestsPerSecond: float64 (refill rate)
  - burst: int (bucket size)
*/
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	clients := gocache.New(constants.RateLimitClientTTL, constants.RateLimitCleanupInterval)

	bucketFor := func(clientIP string) *rate.Limiter {
		if cached, found := clients.Get(clientIP); found {
			limiter := cached.(*rate.Limiter)
			clients.SetDefault(clientIP, limiter)
			return limiter
		}

		limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
		if err := clients.Add(clientIP, limiter, gocache.DefaultExpiration); err != nil {
			// Lost the race to another request from the same client
			if cached, found := clients.Get(clientIP); found {
				return cached.(*rate.Limiter)
			}
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			now := time.Now()
			reservation := bucketFor(clientIP(request)).ReserveN(now, 1)

			if delay := reservation.DelayFrom(now); !reservation.OK() || delay > 0 {
				reservation.CancelAt(now)

				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds(delay)))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// retryAfterSeconds rounds delay up to whole seconds, never below one.
func retryAfterSeconds(delay time.Duration) int {
	if delay <= 0 || delay == rate.InfDuration {
		return 1
	}
	return max(1, int(math.Ceil(delay.Seconds())))
}
