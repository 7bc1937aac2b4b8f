// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/testutil"
)

/*
TestParse covers argument validation, which runs before any connection is made.
*/
func TestParse(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")

	tests := []struct {
		name    string
		args    []string
		wantErr string
		command command
		url     string
	}{
		{name: "up from env", args: []string{"up"}, command: command{name: "up", steps: 1}, url: "postgres://env/db"},
		{name: "down two", args: []string{"down", "-n", "2"}, command: command{name: "down", steps: 2}, url: "postgres://env/db"},
		{name: "flag wins", args: []string{"--database-url", "postgres://flag/db", "version"}, command: command{name: "version", steps: 1}, url: "postgres://flag/db"},
		{name: "no command", args: nil, wantErr: "exactly one command"},
		{name: "two commands", args: []string{"up", "down"}, wantErr: "exactly one command"},
		{name: "unknown", args: []string{"sideways"}, wantErr: "unknown command"},
		{name: "zero steps", args: []string{"down", "--steps", "0"}, wantErr: "at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, cmd, err := parse(tt.args, io.Discard)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.command, cmd)
			assert.Equal(t, tt.url, opts.databaseURL)
		})
	}

	t.Run("missing url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, _, err := parse([]string{"up"}, io.Discard)
		assert.ErrorContains(t, err, "no database URL")
	})
}

/*
TestRun_Version runs the command against a migrated database.
*/
func TestRun_Version(t *testing.T) {
	pool := testutil.StartPostgres(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"--database-url", pool.Config().ConnString(), "version"}, &out, io.Discard))
	assert.Equal(t, "schema version 2\n", out.String())
}
