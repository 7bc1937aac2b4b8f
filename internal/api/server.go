// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the composition root of the HTTP surface: it mounts every
domain router under /api/v1 behind the shared middleware chain and owns the
[http.Server] lifecycle.

Routes:

  - /health, /ready: probes, unauthenticated
  - /api/v1/auth: register, login and refresh are public; logout and me authenticate themselves
  - /api/v1/{users,categories,suppliers,locations,products,movements,audit}: bearer token required
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/inventory/category"
	"github.com/taibuivan/stockroom/internal/inventory/location"
	"github.com/taibuivan/stockroom/internal/inventory/movement"
	"github.com/taibuivan/stockroom/internal/inventory/product"
	"github.com/taibuivan/stockroom/internal/inventory/supplier"
	"github.com/taibuivan/stockroom/internal/platform/config"
	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/middleware"
	"github.com/taibuivan/stockroom/internal/users/account"
	"github.com/taibuivan/stockroom/internal/users/auth"
)

// Handlers carries one router per domain plus the two probes.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth       *auth.Handler
	Users      *account.Handler
	Categories *category.Handler
	Suppliers  *supplier.Handler
	Locations  *location.Handler
	Products   *product.Handler
	Movements  *movement.Handler
	Audit      *audit.Handler
}

// Server is the configured router and the [http.Server] that serves it.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router. authenticate is mounted once, on the
// protected group; the auth routes apply it per endpoint.
func NewServer(cfg *config.Config, logger *slog.Logger, authenticate func(http.Handler) http.Handler, handlers Handlers) *Server {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID(),
		middleware.ClientIP(cfg.TrustedProxyPrefixes()),
		middleware.StructuredLogger(logger),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst),
		middleware.PanicRecovery(logger),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)

	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/auth", handlers.Auth.Routes())

		v1.Group(func(protected chi.Router) {
			protected.Use(authenticate)

			for prefix, routes := range map[string]func() chi.Router{
				"/users":      handlers.Users.Routes,
				"/categories": handlers.Categories.Routes,
				"/suppliers":  handlers.Suppliers.Routes,
				"/locations":  handlers.Locations.Routes,
				"/products":   handlers.Products.Routes,
				"/movements":  handlers.Movements.Routes,
				"/audit":      handlers.Audit.Routes,
			} {
				protected.Mount(prefix, routes())
			}
		})
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}
}

// Handler returns the router without the listener, for httptest.
func (server *Server) Handler() http.Handler {
	return server.router
}

// ListenAndServe blocks until the server stops; after Shutdown it returns http.ErrServerClosed.
func (server *Server) ListenAndServe() error {
	server.logger.Info("server_listening", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(context)
}
