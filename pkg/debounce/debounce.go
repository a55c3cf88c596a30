// Package debounce emits the last value of a burst once the input has been
// quiet for the configured window.
package debounce

import (
	"sync"
	"time"
)

// Debouncer collapse rapid values into one emission
type Debouncer struct {
	delay time.Duration
	emit  func(string)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// New debouncer calling emit after delay of inactivity
func New(delay time.Duration, emit func(string)) *Debouncer {
	return &Debouncer{
		delay: delay,
		emit:  emit,
	}
}

// Push cancel the pending emission and restart the timer with v
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, v)
	})
}

// fire emits unless a newer value or Stop arrived after the timer was armed
func (d *Debouncer) fire(seq uint64, v string) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.emit(v)
}

// Pending a value is waiting for the quiet window
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drop the pending value, later pushes still work
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancel the pending value and ignore further pushes
func (d *Debouncer) Stop() {
	d.Cancel()

	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
