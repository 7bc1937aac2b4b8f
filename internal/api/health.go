// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/respond"
)

// probeTimeout bounds each readiness check.
const probeTimeout = 2 * time.Second

// HealthDependencies are the probes behind /ready. A nil probe is not run,
// which is how Redis drops out when REDIS_URL is empty.
type HealthDependencies struct {
	CheckDatabase func(context context.Context) error
	CheckCache    func(context context.Context) error
}

type probeResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
func NewHealthHandlers(dependencies HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	probes := []struct {
		name  string
		check func(context.Context) error
	}{
		{"postgres", dependencies.CheckDatabase},
		{"redis", dependencies.CheckCache},
	}

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok", "version": constants.AppVersion})
	}

	// GET /ready answers 200 when every configured probe passes, else 503 with the failing checks.
	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := make([]probeResult, 0, len(probes))
		status, code := "ready", http.StatusOK

		for _, probe := range probes {
			if probe.check == nil {
				continue
			}

			result := probeResult{Name: probe.name, OK: true}
			if err := runProbe(request.Context(), probe.check); err != nil {
				result.OK, result.Error = false, err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				logger.ErrorContext(request.Context(), "readiness_check_failed",
					slog.String("dependency", probe.name), slog.Any("error", err))
			}
			results = append(results, result)
		}

		respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{"status": status, "checks": results}})
	}

	return liveness, readiness
}

func runProbe(parent context.Context, check func(context.Context) error) error {
	context, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()
	return check(context)
}
