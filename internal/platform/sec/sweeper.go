// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	stdctx "context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often expired revocations are purged.
const DefaultSweepInterval = time.Hour

// RevocationSweeper periodically purges expired entries from a
// [RevocationStore]. It runs off the request path.
type RevocationSweeper struct {
	store    RevocationStore
	logger   *slog.Logger
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewRevocationSweeper creates a sweeper. A non-positive interval defaults to
// [DefaultSweepInterval].
func NewRevocationSweeper(store RevocationStore, logger *slog.Logger, interval time.Duration) *RevocationSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &RevocationSweeper{
		store:    store,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background loop. It does not block.
func (sweeper *RevocationSweeper) Start() {
	go sweeper.run()
	sweeper.logger.Info("revocation sweeper started", slog.Duration("interval", sweeper.interval))
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (sweeper *RevocationSweeper) Stop() {
	close(sweeper.stopCh)
	<-sweeper.doneCh
	sweeper.logger.Info("revocation sweeper stopped")
}

func (sweeper *RevocationSweeper) run() {
	defer close(sweeper.doneCh)

	ticker := time.NewTicker(sweeper.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweeper.sweep()
		case <-sweeper.stopCh:
			return
		}
	}
}

func (sweeper *RevocationSweeper) sweep() {
	context, cancel := stdctx.WithTimeout(stdctx.Background(), sweeper.interval)
	defer cancel()

	if err := sweeper.store.Sweep(context); err != nil {
		sweeper.logger.Error("revocation sweep failed", slog.Any("error", err))
		return
	}
	sweeper.logger.Debug("revocation sweep completed")
}
