// Package connectivity observes whether the remote service is reachable.
// It only ever produces notifications; it never touches controller state.
package connectivity

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is the time between probes
const DefaultInterval = 10 * time.Second

// Messages shown on a change of connectivity
const (
	MsgOffline  = "🌐 You appear to be offline. Please check your internet connection."
	MsgRestored = "🌐 Connection restored. You can continue using the application."
)

// Prober checks the remote service
type Prober interface {
	Ping(ctx context.Context) error
}

// Notifier reports connectivity changes
type Notifier interface {
	Show(text string, isError bool)
}

// Watcher probes on an interval and reports transitions
type Watcher struct {
	prober   Prober
	notifier Notifier
	interval time.Duration
	logger   *zap.Logger

	offline atomic.Bool
}

// New creates a Watcher. The service is assumed reachable at start.
func New(prober Prober, notifier Notifier, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		prober:   prober,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Run probes until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check probes once and notifies if reachability changed
func (w *Watcher) Check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	err := w.prober.Ping(probeCtx)
	if ctx.Err() != nil {
		// shutting down, not a connectivity change
		return
	}

	offline := err != nil
	if w.offline.Swap(offline) == offline {
		return
	}

	if offline {
		w.logger.Warn("Remote service unreachable", zap.Error(err))
		w.notifier.Show(MsgOffline, true)
		return
	}
	w.logger.Info("Remote service reachable again")
	w.notifier.Show(MsgRestored, false)
}

// Online reports the last observed reachability
func (w *Watcher) Online() bool {
	return !w.offline.Load()
}
