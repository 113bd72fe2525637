// Package connectivity provides the ambient network-reachability signal the
// realtime store consumes: a point-in-time probe and an edge-triggered
// watcher that reports online/offline transitions.
package connectivity

import (
	"context"
	"net"
	"sync"
	"time"
)

// Probe reports whether the network is currently reachable.
type Probe interface {
	Online(ctx context.Context) bool
}

// Static is a Probe with a fixed answer, for tests and offline demos.
type Static bool

// Online implements Probe.
func (s Static) Online(context.Context) bool { return bool(s) }

// Dialer probes reachability by attempting a TCP dial.
type Dialer struct {
	// Addr is the host:port to dial (e.g. "1.1.1.1:443").
	Addr string

	// Timeout bounds each dial attempt.
	Timeout time.Duration
}

// Online implements Probe.
func (d Dialer) Online(ctx context.Context) bool {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var nd net.Dialer
	conn, err := nd.DialContext(dialCtx, "tcp", d.Addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Event is an edge-triggered connectivity transition.
type Event struct {
	Online bool
}

// Watcher polls a Probe and emits an Event each time the answer changes.
type Watcher struct {
	probe    Probe
	interval time.Duration
	events   chan Event

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewWatcher creates a watcher polling probe every interval.
func NewWatcher(probe Probe, interval time.Duration) *Watcher {
	return &Watcher{
		probe:    probe,
		interval: interval,
		events:   make(chan Event, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Events returns the channel transitions are delivered on.
// If the consumer falls behind, intermediate transitions are dropped in favor
// of the most recent one.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.started = true
	go w.run(ctx)
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := w.probe.Online(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			online := w.probe.Online(ctx)
			if online == last {
				continue
			}
			last = online
			select {
			case w.events <- Event{Online: online}:
			default:
				// Replace the stale buffered event with the newest edge.
				select {
				case <-w.events:
				default:
				}
				w.events <- Event{Online: online}
			}
		}
	}
}

// Stop halts polling and waits for the polling goroutine to exit.
// Stop is idempotent and safe to call on a watcher that was never started.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	if w.started {
		<-w.done
	}
}
