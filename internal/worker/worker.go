package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
	"github.com/bhataasim1/integrations-technical-assessment/internal/observability"
)

// CleanupWorker periodically evicts expired entries from the credential
// store. Backends with native expiry make the sweep a cheap no-op; the
// in-memory backend relies on it to keep expired flows from
// accumulating.
type CleanupWorker struct {
	store    driven.CredentialStore
	logger   *slog.Logger
	interval time.Duration

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the cleanup worker.
type Config struct {
	Store    driven.CredentialStore
	Logger   *slog.Logger
	Interval time.Duration
}

// NewCleanupWorker creates a cleanup worker. A non-positive interval
// falls back to one minute.
func NewCleanupWorker(cfg Config) *CleanupWorker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	return &CleanupWorker{
		store:    cfg.Store,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the sweep loop. It sweeps once immediately and then on
// every interval tick until Stop is called or the context is cancelled.
// Calling Start on a running worker is a no-op.
func (w *CleanupWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("cleanup worker starting", "interval", w.interval)

	go w.run(ctx)

	return nil
}

// Stop gracefully stops the worker and waits for an in-flight sweep to
// finish. Stopping a stopped worker is a no-op.
func (w *CleanupWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("cleanup worker stopped")
}

// Wait blocks until the worker stops.
func (w *CleanupWorker) Wait() {
	<-w.doneCh
}

// Running reports whether the worker loop is active.
func (w *CleanupWorker) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *CleanupWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cleanup worker context cancelled")
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep runs one cleanup pass. A sweep never outlives its interval
// slot.
func (w *CleanupWorker) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	start := time.Now()
	if err := w.store.Cleanup(sweepCtx); err != nil {
		w.logger.Error("store cleanup failed", "error", err)
		observability.RecordCleanup(observability.OutcomeError)
		return
	}

	w.logger.Debug("store cleanup completed", "duration", time.Since(start))
	observability.RecordCleanup(observability.OutcomeSuccess)
}
