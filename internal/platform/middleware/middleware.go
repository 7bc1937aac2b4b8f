// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP decorators shared by every router.

Chain order, outermost first, as mounted by the api package:

  - RequestID: correlation ID in context and response header.
  - ClientIP: caller address, trusting forwarding headers from known proxies only.
  - StructuredLogger: request-scoped slog logger plus a completion record.
  - RateLimit: token bucket per client address.
  - PanicRecovery: converts panics into a 500 envelope.
  - CORS: origin allow-list and preflight replies.

Authenticate and the [Guards] are mounted per route group, not globally.
*/
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/stockroom/internal/platform/apperr"
	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/ctxutil"
	"github.com/taibuivan/stockroom/internal/platform/respond"
)

// requestIDMaxLength bounds client-supplied correlation IDs.
const requestIDMaxLength = 64

// # Request Tracing

// RequestID propagates a safe client X-Request-ID or mints a UUIDv7.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !validRequestID(requestID) {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// validRequestID accepts [A-Za-z0-9._-] up to requestIDMaxLength, so IDs are safe to echo and log.
func validRequestID(id string) bool {
	if id == "" || len(id) > requestIDMaxLength {
		return false
	}
	for _, char := range id {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
		case char == '-', char == '_', char == '.':
		default:
			return false
		}
	}
	return true
}

// # Activity Logging

// responseRecorder captures the status and body size written downstream.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *responseRecorder) WriteHeader(code int) {
	if recorder.status == 0 {
		recorder.status = code
	}
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *responseRecorder) Write(body []byte) (int, error) {
	if recorder.status == 0 {
		recorder.status = http.StatusOK
	}
	written, err := recorder.ResponseWriter.Write(body)
	recorder.bytes += written
	return written, err
}

func (recorder *responseRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

/*
StructuredLogger injects a request-scoped logger and logs one
"http_request_finished" record per request.

Description: 5xx responses log at error and 4xx at warn. Probe endpoints
(/health, /ready) log at debug so they do not drown real traffic.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()
			address := clientIP(request)

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", address),
			)

			ctx := ctxutil.WithClientIP(ctxutil.WithLogger(request.Context(), requestLogger), address)
			recorder := &responseRecorder{ResponseWriter: writer}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			if recorder.status == 0 {
				recorder.status = http.StatusOK
			}

			requestLogger.Log(ctx, levelFor(request.URL.Path, recorder.status), "http_request_finished",
				slog.Int("status", recorder.status),
				slog.Int("bytes", recorder.bytes),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			)
		})
	}
}

func levelFor(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case path == "/health" || path == "/ready":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// # Reliability & Safety

// panicStackSize is the buffer for the goroutine stack captured on panic.
const panicStackSize = 8 << 10

// PanicRecovery turns a handler panic into a logged 500 response.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				stack := make([]byte, panicStackSize)
				stack = stack[:runtime.Stack(stack, false)]

				ctxutil.LoggerOr(request.Context(), logger).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(stack)),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Client Address

/*
ClientIP resolves the caller's address once and stores it in the context for
the logger, the rate limiters and the audit trail.

Description: X-Real-IP and X-Forwarded-For are honoured only when the direct
peer is inside trustedProxies. Any other peer can put arbitrary values in
those headers, so its own address is used.
*/
func ClientIP(trustedProxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ip := RealIP(request, trustedProxies)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClientIP(request.Context(), ip)))
		})
	}
}

/*
RealIP returns the client address as seen through trusted proxies.

Description: With a trusted peer, X-Real-IP wins. Otherwise X-Forwarded-For
is read right to left and the first hop outside trustedProxies is the
client. Values that do not parse as an IP are ignored.
*/
func RealIP(request *http.Request, trustedProxies []netip.Prefix) string {
	peer := peerAddress(request)
	if !isTrusted(peer, trustedProxies) {
		return peer
	}

	if ip := parseIP(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	hops := strings.Split(request.Header.Get(constants.HeaderXForwardedFor), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		ip := parseIP(hops[i])
		if ip == "" {
			break
		}
		if !isTrusted(ip, trustedProxies) {
			return ip
		}
	}
	return peer
}

// clientIP returns the address stored by [ClientIP], or the direct peer when
// that middleware is not mounted.
func clientIP(request *http.Request) string {
	if ip := ctxutil.GetClientIP(request.Context()); ip != "" {
		return ip
	}
	return peerAddress(request)
}

func peerAddress(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

func isTrusted(ip string, trustedProxies []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func parseIP(value string) string {
	ip := net.ParseIP(strings.TrimSpace(value))
	if ip == nil {
		return ""
	}
	return ip.String()
}
