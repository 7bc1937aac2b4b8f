// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/respond"
	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Satisfied by [*sec.TokenService]; tests inject fakes.
type TokenVerifier interface {
	VerifyToken(context context.Context, token string, purpose sec.TokenPurpose) (sec.VerifiedPayload, error)
}

// Authenticate requires a valid ACCESS token on every request.
//
// # Flow
//  1. Extract 'Authorization: Bearer <token>'; absent or empty is a 401.
//  2. Refuse with 429 when the (client IP, token prefix) key already used up
//     its failed attempts. No verification happens in that case.
//  3. Verify via [TokenVerifier]; failures are counted and mapped by [TokenError].
//  4. Inject the [*sec.Identity] into the request context. When the token
//     expires within [constants.TokenExpiringSoonThreshold] the response
//     carries advisory X-Token-Expiring-Soon / X-Token-Expires-In headers.
func Authenticate(verifier TokenVerifier, limiter FailureLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			// 1. Credential extraction
			token, ok := BearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Brute-force guard
			limiterKey := FailureKey(clientIP(request), token)
			blocked, retryAfter, err := limiter.Blocked(ctx, limiterKey)
			if err != nil {
				logger.WarnContext(ctx, "auth_limiter_unavailable", slog.Any("error", err))
			}
			if blocked {
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds(retryAfter)))
				return
			}

			// 3. Verification
			payload, err := verifier.VerifyToken(ctx, token, sec.PurposeAccess)
			if err != nil {
				if !errors.Is(err, sec.ErrTokenVerification) {
					if recordErr := limiter.RecordFailure(ctx, limiterKey); recordErr != nil {
						logger.WarnContext(ctx, "auth_limiter_unavailable", slog.Any("error", recordErr))
					}
				}
				respond.Error(writer, request, TokenError(err))
				return
			}

			// 4. Identity injection
			now := time.Now()
			identity := payload.Identity(now)

			remaining := identity.ExpiresAt.Sub(now)
			if remaining < constants.TokenExpiringSoonThreshold {
				identity.ExpiringSoon = true
				writer.Header().Set(constants.HeaderTokenExpiringSoon, "true")
				writer.Header().Set(constants.HeaderTokenExpiresIn, strconv.FormatInt(int64(remaining.Seconds()), 10))
			}

			ctx = ctxutil.WithIdentity(ctx, identity)
			ctx = ctxutil.WithLogger(ctx, logger.With(
				slog.Int64("subject_id", identity.SubjectID),
				slog.String("role", identity.Role.String()),
			))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header. The scheme
// is matched case-insensitively.
func BearerToken(request *http.Request) (string, bool) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if len(header) < len(constants.BearerPrefix) {
		return "", false
	}
	if !strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(constants.BearerPrefix):])
	return token, token != ""
}

// TokenError maps token failures to client-safe API errors.
//
// Anything that is not a known token failure becomes a generic 500; the
// cause is kept on the [apperr.AppError] for logging only.
func TokenError(err error) *apperr.AppError {
	var validationErr *sec.ValidationError

	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.TokenExpired()
	case errors.Is(err, sec.ErrTokenRevoked):
		return apperr.TokenRevoked()
	case errors.Is(err, sec.ErrInvalidToken), errors.Is(err, sec.ErrInvalidTokenPurpose):
		return apperr.InvalidToken()
	case errors.As(err, &validationErr):
		details := make([]apperr.FieldError, 0, len(validationErr.Fields))
		for _, field := range validationErr.FieldNames() {
			details = append(details, apperr.FieldError{Field: field, Message: "failed rule " + validationErr.Fields[field]})
		}
		return apperr.ValidationError("Invalid token payload", details...)
	default:
		return apperr.Internal(err)
	}
}
