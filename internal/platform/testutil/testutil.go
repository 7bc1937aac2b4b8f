// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testutil starts disposable Postgres and Redis containers for
// integration tests. Tests using it are skipped when Docker is unavailable.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/stockroom/internal/platform/migration"
	pgstore "github.com/taibuivan/stockroom/internal/platform/postgres"
	redisstore "github.com/taibuivan/stockroom/internal/platform/redis"
)

const (
	postgresImage = "postgres:17-alpine"
	redisImage    = "redis:7-alpine"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StartPostgres runs a migrated Postgres container and returns a pool to it.
// The pool and the container are released when the test ends.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := postgres.Run(t.Context(),
		postgresImage,
		postgres.WithDatabase("stockroom-test"),
		postgres.WithUsername("stockroom"),
		postgres.WithPassword("pwd"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "starting postgres container")

	dsn, err := container.ConnectionString(t.Context(), "sslmode=disable")
	require.NoError(t, err)
	t.Logf("postgres container started, DSN=%s", dsn)

	require.NoError(t, migration.RunUp(dsn, Logger()), "migrating schema")

	pool, err := pgstore.NewPool(t.Context(), dsn, pgstore.Options{MaxConns: 30, StatementTimeout: 10 * time.Second}, Logger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// StartRedis runs a Redis container and returns a client to it.
func StartRedis(t *testing.T) *redis.Client {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := testcontainers.GenericContainer(t.Context(), testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "starting redis container")

	endpoint, err := container.Endpoint(t.Context(), "")
	require.NoError(t, err)

	client, err := redisstore.NewClient(t.Context(), "redis://"+endpoint, 0, Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

type beginner interface {
	Begin(context context.Context) (pgx.Tx, error)
}

// WithTx runs testFunc inside a transaction that is rolled back afterwards,
// so the database is unchanged when the test returns.
func WithTx(t *testing.T, db beginner, testFunc func(tx pgx.Tx)) {
	t.Helper()

	tx, err := db.Begin(t.Context())
	require.NoError(t, err)

	defer func() {
		require.NoError(t, tx.Rollback(t.Context()))
	}()

	testFunc(tx)
}
