// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockroom/internal/platform/sec"
)

// countingStore records how often it was swept.
type countingStore struct {
	*sec.MemoryRevocationStore
	sweeps atomic.Int32
}

func (store *countingStore) Sweep(ctx context.Context) error {
	store.sweeps.Add(1)
	return store.MemoryRevocationStore.Sweep(ctx)
}

/*
TestRevocationSweeper_RunsPeriodically verifies the worker sweeps on every tick.
*/
func TestRevocationSweeper_RunsPeriodically(t *testing.T) {
	store := &countingStore{MemoryRevocationStore: sec.NewMemoryRevocationStore()}
	require.NoError(t, store.Revoke(context.Background(), "short", time.Now().Add(5*time.Millisecond)))

	sweeper := sec.NewRevocationSweeper(store, discardLogger(), 10*time.Millisecond)
	sweeper.Start()

	// 1. Several sweeps happen and the expired entry is reclaimed
	require.Eventually(t, func() bool {
		return store.sweeps.Load() >= 2 && store.Len() == 0
	}, time.Second, 5*time.Millisecond)

	// 2. Stop halts the loop
	sweeper.Stop()
	after := store.sweeps.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, store.sweeps.Load())
}
