// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command migrate runs the embedded schema migrations outside the API process.
//
// # Usage
//
//	migrate up                      # apply everything pending
//	migrate down -n 1               # revert the last migration
//	migrate version                 # print the applied version
//
// The database URL comes from --database-url, else DATABASE_URL (a .env
// file in the working directory is honoured).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/taibuivan/stockroom/internal/platform/logger"
	"github.com/taibuivan/stockroom/internal/platform/migration"
)

type options struct {
	databaseURL string
	steps       int
	logLevel    string
}

type command struct {
	name  string
	steps int
}

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(args []string, out, logOutput io.Writer) error {
	opts, cmd, err := parse(args, out)
	if err != nil {
		return err
	}

	log := logger.New(logOutput, logger.Options{Level: opts.logLevel, Format: "text"})

	runner, err := migration.Open(opts.databaseURL, log)
	if err != nil {
		return err
	}
	defer func() { _ = runner.Close() }()

	switch cmd.name {
	case "up":
		err = runner.Up()
	case "down":
		err = runner.Down(cmd.steps)
	}
	if err != nil {
		return err
	}

	version, err := runner.Version()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "schema version %d\n", version)
	return err
}

// parse validates flags and the subcommand without touching the database.
func parse(args []string, out io.Writer) (options, command, error) {
	opts := options{}

	fs := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres URL (default $DATABASE_URL)")
	fs.IntVarP(&opts.steps, "steps", "n", 1, "Migrations to revert with down")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return opts, command{}, err
	}

	if fs.NArg() != 1 {
		return opts, command{}, errors.New("expected exactly one command: up, down or version")
	}
	cmd := command{name: fs.Arg(0), steps: opts.steps}

	switch cmd.name {
	case "up", "version":
	case "down":
		if cmd.steps < 1 {
			return opts, command{}, fmt.Errorf("--steps must be at least 1, got %d", cmd.steps)
		}
	default:
		return opts, command{}, fmt.Errorf("unknown command %q", cmd.name)
	}

	if opts.databaseURL == "" {
		return opts, command{}, errors.New("no database URL: set DATABASE_URL or pass --database-url")
	}
	return opts, cmd, nil
}
