package mdpaginate

import (
	"sync"
	"time"
)

// DefaultDebounceInterval collapses render triggers arriving faster than a
// convert-and-split cycle can complete (typically user keystrokes).
const DefaultDebounceInterval = 100 * time.Millisecond

// Debouncer collapses repeated triggers within an interval to a single
// trailing run. It replaces shared module-level "last update" timestamps: one
// debouncer belongs to exactly one pipeline and is passed in explicitly.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given interval.
// Intervals below zero are treated as zero (run on the next trigger flush).
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval < 0 {
		interval = 0
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn to run after the interval, replacing any run still
// pending. Only the last fn scheduled within a window executes; earlier
// triggers in the same window are dropped. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending run and rejects further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
