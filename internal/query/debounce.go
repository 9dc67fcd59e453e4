package query

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces a stream of updates into at most one call per pause.
// Every Update restarts the delay window and cancels any call still in
// flight, so only the response to the most recent update can ever be
// applied by the caller.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	clock  Clock
	timer  Timer
	gen    uint64
	cancel context.CancelFunc
}

// NewDebouncer creates a Debouncer with the given delay window
func NewDebouncer(delay time.Duration, clock Clock) *Debouncer {
	return &Debouncer{delay: delay, clock: clock}
}

// Update restarts the delay window. When the window elapses with no further
// Update, run is invoked with a context that a subsequent Update or Cancel
// aborts.
func (d *Debouncer) Update(run func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.supersedeLocked()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen, run)
	})
}

// Cancel drops the pending window and aborts any in-flight call. Called on
// teardown and when the input short-circuits (e.g. an empty query).
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.supersedeLocked()
}

func (d *Debouncer) supersedeLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer) fire(gen uint64, run func(ctx context.Context)) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	run(ctx)

	d.mu.Lock()
	if gen == d.gen {
		d.cancel = nil
	}
	d.mu.Unlock()
	cancel()
}
