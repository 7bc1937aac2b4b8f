// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/migration"
	"github.com/taibuivan/stockroom/internal/platform/testutil"
)

/*
TestRunner_UpDown verifies the embedded schema can be reverted and re-applied.
*/
func TestRunner_UpDown(t *testing.T) {
	pool := testutil.StartPostgres(t)
	dsn := pool.Config().ConnString()

	runner, err := migration.Open(dsn, testutil.Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = runner.Close() })

	// 1. StartPostgres already migrated everything
	version, err := runner.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	// 2. Re-running up is a no-op
	require.NoError(t, runner.Up())

	// 3. Reverting the inventory schema drops its tables
	require.NoError(t, runner.Down(1))
	version, err = runner.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	var exists bool
	require.NoError(t, pool.QueryRow(t.Context(), `SELECT to_regclass('inventory.product') IS NOT NULL`).Scan(&exists))
	assert.False(t, exists)

	// 4. And up brings it back
	require.NoError(t, runner.Up())
	require.NoError(t, pool.QueryRow(t.Context(), `SELECT to_regclass('inventory.product') IS NOT NULL`).Scan(&exists))
	assert.True(t, exists)

	assert.Error(t, runner.Down(0))
}
