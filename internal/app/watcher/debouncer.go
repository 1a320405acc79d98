package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single callback after a delay
type Debouncer interface {
	Trigger()
	Stop()
}

// debouncer implements the Debouncer interface
type debouncer struct {
	duration time.Duration
	callback func()
	timer    *time.Timer
	mu       sync.Mutex
	stopped  bool
}

// NewDebouncer creates a new Debouncer with the specified duration and callback
func NewDebouncer(duration time.Duration, callback func()) Debouncer {
	return &debouncer{
		duration: duration,
		callback: callback,
	}
}

// Trigger resets the debounce timer; the callback fires once the burst settles
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, d.fire)
}

// Stop stops the debouncer and cancels any pending callback
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire executes the callback
func (d *debouncer) fire() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.timer = nil

	d.mu.Unlock()

	d.callback()
}
