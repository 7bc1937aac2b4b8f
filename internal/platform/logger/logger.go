// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the root [slog.Logger] used by the API process.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/taibuivan/stockroom/internal/platform/constants"
)

// Options selects the handler and minimum level.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Format is "json" (default) or "text".
	Format string
}

// New returns a logger writing to output with the app attribute attached.
func New(output io.Writer, options Options) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: ParseLevel(options.Level)}

	var handler slog.Handler
	if strings.EqualFold(options.Format, "text") {
		handler = slog.NewTextHandler(output, handlerOptions)
	} else {
		handler = slog.NewJSONHandler(output, handlerOptions)
	}

	return slog.New(handler).With(slog.String(constants.LogFieldApp, constants.AppName))
}

// ParseLevel maps a level name to a [slog.Level].
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
