package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/reposelink/reposelink/internal/connectivity"
)

// DefaultSyncInterval is how often the worker runs a sync round.
const DefaultSyncInterval = 30 * time.Second

// SyncWorker runs periodic sync rounds against a Store and applies
// connectivity edges as they arrive. It is owned by the store's lifecycle:
// started once at session start and stopped explicitly on teardown.
type SyncWorker struct {
	store    *Store
	interval time.Duration
	events   <-chan connectivity.Event
	logger   *slog.Logger

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSyncWorker creates a worker for store. interval defaults to
// DefaultSyncInterval when zero; events may be nil if no connectivity
// watcher is wired.
func NewSyncWorker(store *Store, interval time.Duration, events <-chan connectivity.Event, logger *slog.Logger) *SyncWorker {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncWorker{
		store:    store,
		interval: interval,
		events:   events,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the worker goroutine. It runs until Stop is called or ctx
// is cancelled.
func (w *SyncWorker) Start(ctx context.Context) {
	w.started = true
	go w.run(ctx)
}

func (w *SyncWorker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			if err := w.store.SyncData(ctx); err != nil {
				w.logger.Warn("sync round aborted", "error", err)
			}
		case event := <-w.events:
			// Edges apply immediately, skipping the simulated round trip.
			w.store.SetOnline(event.Online)
			w.logger.Info("connectivity changed", "online", event.Online)
		}
	}
}

// Stop halts the worker and waits for the goroutine to exit. Stop is
// idempotent and safe to call on a worker that was never started.
func (w *SyncWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	if w.started {
		<-w.done
	}
}
