// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the embedded SQL schema with golang-migrate.
//
// The files under sql/ are compiled into the binary, so the API, cmd/migrate
// and the integration tests all run the same schema without a path on disk.
package migration

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the pgx5:// scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// ErrDirty is returned when a previous run failed halfway and the schema
// version must be repaired by hand before anything else runs.
var ErrDirty = errors.New("migration: database is dirty")

// Runner drives golang-migrate over the embedded files.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// Open connects to dsn (postgres:// or postgresql://) and prepares a [Runner].
func Open(dsn string, logger *slog.Logger) (*Runner, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open embedded source: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, pgx5URL(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = slogAdapter{logger: logger}

	return &Runner{migrator: migrator, logger: logger}, nil
}

// Close releases the source and the database connection.
func (runner *Runner) Close() error {
	sourceErr, dbErr := runner.migrator.Close()
	return errors.Join(sourceErr, dbErr)
}

// Version returns the applied version, 0 for an empty database.
func (runner *Runner) Version() (uint, error) {
	version, dirty, err := runner.migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration: failed to read version: %w", err)
	case dirty:
		return version, fmt.Errorf("%w at version %d", ErrDirty, version)
	}
	return version, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (runner *Runner) Up() error {
	return runner.apply("up", runner.migrator.Up)
}

// Down reverts the last steps migrations.
func (runner *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration: down needs a positive step count, got %d", steps)
	}
	return runner.apply("down", func() error { return runner.migrator.Steps(-steps) })
}

func (runner *Runner) apply(direction string, step func() error) error {
	from, err := runner.Version()
	if err != nil {
		return err
	}

	if err := step(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
			return nil
		}
		return fmt.Errorf("migration: %s failed: %w", direction, err)
	}

	to, err := runner.Version()
	if err != nil {
		return err
	}
	runner.logger.Info("migration_applied",
		slog.String("direction", direction),
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// RunUp opens a [Runner], applies pending migrations and closes it.
func RunUp(dsn string, logger *slog.Logger) error {
	runner, err := Open(dsn, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()
	return runner.Up()
}

// pgx5URL swaps the postgres scheme for the one the pgx/v5 driver registers.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogAdapter satisfies migrate.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter slogAdapter) Printf(format string, args ...any) {
	adapter.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter slogAdapter) Verbose() bool { return false }
