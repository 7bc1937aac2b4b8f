// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Stockroom HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and, when REDIS_URL is set, Redis.
//  4. Run database migrations (idempotent).
//  5. Build the token lifecycle: codec, revocation store, failure limiter.
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/stockroom/internal/api"
	"github.com/taibuivan/stockroom/internal/inventory/audit"
	"github.com/taibuivan/stockroom/internal/inventory/category"
	"github.com/taibuivan/stockroom/internal/inventory/location"
	"github.com/taibuivan/stockroom/internal/inventory/movement"
	"github.com/taibuivan/stockroom/internal/inventory/product"
	"github.com/taibuivan/stockroom/internal/inventory/supplier"
	"github.com/taibuivan/stockroom/internal/platform/config"
	"github.com/taibuivan/stockroom/internal/platform/constants"
	"github.com/taibuivan/stockroom/internal/platform/logger"
	"github.com/taibuivan/stockroom/internal/platform/middleware"
	"github.com/taibuivan/stockroom/internal/platform/migration"
	pgstore "github.com/taibuivan/stockroom/internal/platform/postgres"
	redisstore "github.com/taibuivan/stockroom/internal/platform/redis"
	"github.com/taibuivan/stockroom/internal/platform/sec"
	"github.com/taibuivan/stockroom/internal/users/account"
	"github.com/taibuivan/stockroom/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := logger.New(os.Stdout, logger.Options{Level: "info"})
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	log = logger.New(os.Stdout, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.RedisURL != ""),
	)

	// Root context for startup. A deadline catches misconfiguration quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.Options{
		MaxConns:         cfg.DBMaxConns,
		MinConns:         cfg.DBMinConns,
		StatementTimeout: cfg.DBStatementTimeout,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, log), "run migrations")

	// ── 6. Token Lifecycle ────────────────────────────────────────────────
	codec, err := sec.NewCodec(sec.CodecConfig{
		AccessSecret:  cfg.AccessSecret(),
		RefreshSecret: cfg.RefreshSecret(),
		Issuer:        constants.AuthIssuer,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		Production:    cfg.IsProduction(),
	})
	must(log, err, "initialize token codec")

	var revocations sec.RevocationStore
	var limiter middleware.FailureLimiter
	if rdb != nil {
		revocations = sec.NewRedisRevocationStore(rdb)
		limiter = middleware.NewRedisFailureLimiter(rdb, constants.FailedAuthMaxAttempts, constants.FailedAuthWindow)
	} else {
		revocations = sec.NewMemoryRevocationStore()
		limiter = middleware.NewMemoryFailureLimiter(constants.FailedAuthMaxAttempts, constants.FailedAuthWindow)
	}

	sweeper := sec.NewRevocationSweeper(revocations, log, cfg.RevocationSweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	tokens := sec.NewTokenService(codec, revocations, log)

	policy, err := sec.NewPolicy(cfg.WriteRoles, cfg.ReadRoles)
	must(log, err, "build role policy")

	guards := middleware.NewGuards(policy)
	authenticate := middleware.Authenticate(tokens, limiter)

	// ── 7. Health handlers ────────────────────────────────────────────────
	dependencies := api.HealthDependencies{
		CheckDatabase: func(context context.Context) error {
			return pgstore.Ping(context, pool)
		},
	}
	if rdb != nil {
		dependencies.CheckCache = func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	auditService := audit.NewService(audit.NewPostgresRepository(pool), log)
	userRepository := auth.NewUserRepository(pool)

	authService := auth.NewService(userRepository, tokens, auditService, log)
	accountService := account.NewService(userRepository, auditService, log)
	categoryService := category.NewService(category.NewPostgresRepository(pool), auditService, log)
	supplierService := supplier.NewService(supplier.NewPostgresRepository(pool), auditService, log)
	locationService := location.NewService(location.NewPostgresRepository(pool), auditService, log)
	productService := product.NewService(product.NewPostgresRepository(pool), auditService, log)
	movementService := movement.NewService(movement.NewPostgresRepository(pool), auditService, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, authenticate),
		Users:      account.NewHandler(accountService, guards),
		Categories: category.NewHandler(categoryService, guards),
		Suppliers:  supplier.NewHandler(supplierService, guards),
		Locations:  location.NewHandler(locationService, guards),
		Products:   product.NewHandler(productService, guards),
		Movements:  movement.NewHandler(movementService, guards),
		Audit:      audit.NewHandler(auditService, guards),
	}

	server := api.NewServer(cfg, log, authenticate, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		return
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
