package connectivity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/logging"
)

// Pinger checks whether the storefront API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const probeTimeout = 3 * time.Second

// Watcher probes the API on a fixed interval and feeds the result into an
// Override.
type Watcher struct {
	pinger   Pinger
	override *Override
	interval time.Duration
	logger   logging.Logger
}

func NewWatcher(p Pinger, o *Override, interval time.Duration, logger logging.Logger) *Watcher {
	return &Watcher{pinger: p, override: o, interval: interval, logger: logger.With("module", "watcher")}
}

// Probe pings once with a short timeout.
func (w *Watcher) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := w.pinger.Ping(ctx); err != nil {
		w.logger.Debug(ctx, "ping failed", "error", err)
		return false
	}
	return true
}

// Start probes once to pick the initial state, then runs until ctx is done.
func (w *Watcher) Start(ctx context.Context) {
	w.override.Start(ctx, w.Probe(ctx))
	w.Run(ctx)
}

// Run probes every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.override.SetOnline(ctx, w.Probe(ctx))
		case <-ctx.Done():
			return
		}
	}
}
