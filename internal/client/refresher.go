package client

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pipeboard/pipeboard/internal/observability/logger"
)

// Refresher performs the periodic full re-read of a database-backed store.
// It tracks reachability so that read paths can degrade to an empty view
// instead of failing when the database is down.
type Refresher struct {
	store    Store
	interval time.Duration
	degraded atomic.Bool
}

// NewRefresher creates a refresher. A non-positive interval falls back
// to one minute.
func NewRefresher(store Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{store: store, interval: interval}
}

// Degraded reports whether the last probe failed to reach the store.
func (r *Refresher) Degraded() bool {
	return r.degraded.Load()
}

// Run probes the store once per interval until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.probe(ctx)
		}
	}
}

func (r *Refresher) probe(ctx context.Context) {
	_, err := r.store.ListActive(ctx)
	was := r.degraded.Swap(err != nil)

	switch {
	case err != nil && !was:
		slog.WarnContext(ctx, "client store unreachable, degrading reads",
			logger.Component("refresher"), logger.Error(err))
	case err == nil && was:
		slog.InfoContext(ctx, "client store reachable again",
			logger.Component("refresher"))
	}
}
