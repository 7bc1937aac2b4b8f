// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across layers: server
// timing, throttling, token handling, header names and cache key prefixes.
// Anything an operator may tune lives in package config instead.
package constants

import "time"

// # Metadata

const (
	AppName    = "stockroom-api"
	AppVersion = "0.1.0-dev"

	// LogFieldApp is the attribute every log record carries with [AppName].
	LogFieldApp = "app"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// GlobalRequestTimeout bounds a handler, including its database work.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the drain window for in-flight requests.
	ShutdownTimeout = 30 * time.Second
)

// # Throttling

const (
	// DefaultRateLimitRPS is the token refill rate per client address.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the bucket size per client address.
	DefaultRateLimitBurst = 150

	// RateLimitClientTTL evicts a client bucket after this long without traffic.
	RateLimitClientTTL = 3 * time.Minute

	// RateLimitCleanupInterval is how often evicted buckets are purged.
	RateLimitCleanupInterval = time.Minute

	// FailedAuthMaxAttempts failed verifications per client and token prefix
	// are allowed inside [FailedAuthWindow] before the client is blocked.
	FailedAuthMaxAttempts = 5
	FailedAuthWindow      = 15 * time.Minute

	// FailedAuthTokenPrefix is how many leading token characters key the failure counter.
	FailedAuthTokenPrefix = 10
)

// # Tokens & Credentials

const (
	// AuthIssuer is the "iss" claim of every token.
	AuthIssuer = "stockroom"

	BearerPrefix = "Bearer "

	// TokenExpiringSoonThreshold is the remaining lifetime under which
	// responses carry the expiry advisory headers.
	TokenExpiringSoonThreshold = 5 * time.Minute

	PasswordMinLength = 8
)

// # HTTP

const (
	HeaderAuthorization     = "Authorization"
	HeaderContentType       = "Content-Type"
	HeaderOrigin            = "Origin"
	HeaderRetryAfter        = "Retry-After"
	HeaderXRequestID        = "X-Request-ID"
	HeaderXRealIP           = "X-Real-IP"
	HeaderXForwardedFor     = "X-Forwarded-For"
	HeaderTokenExpiringSoon = "X-Token-Expiring-Soon"
	HeaderTokenExpiresIn    = "X-Token-Expires-In"

	ContentTypeJSON = "application/json; charset=utf-8"

	// CORSAllowedDomain admits browser origins on this host and its subdomains.
	CORSAllowedDomain = "stockroom.app"
)

// # Redis Key Prefixes

const (
	RedisPrefixRevoked    = "auth:revoked:"
	RedisPrefixFailedAuth = "auth:failed:"
)
