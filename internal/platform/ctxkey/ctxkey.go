// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey declares the typed keys for per-request context values.
// Values are read and written through package ctxutil only.
package ctxkey

// Key is a distinct type, so its values never collide with keys from other packages.
type Key int

const (
	// KeyRequestID holds the X-Request-ID correlation value (string).
	KeyRequestID Key = iota + 1

	// KeyIdentity holds the authenticated caller (*sec.Identity).
	KeyIdentity

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger

	// KeyClientIP holds the resolved client address (string).
	KeyClientIP
)

var names = map[Key]string{
	KeyRequestID: "request_id",
	KeyIdentity:  "identity",
	KeyLogger:    "logger",
	KeyClientIP:  "client_ip",
}

// String names the key in debug output such as fmt.Printf("%v", ctx).
func (key Key) String() string {
	if name, ok := names[key]; ok {
		return name
	}
	return "unknown"
}
