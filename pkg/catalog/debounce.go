package catalog

import (
	"sync"
	"time"
)

const DefaultDebounce = 200 * time.Millisecond

// Debouncer turns a burst of raw input into a single committed value once
// the input has been quiet for the configured delay.
type Debouncer struct {
	delay  time.Duration
	commit func(string)

	mu        sync.Mutex
	raw       string
	committed string
	gen       uint64
	timer     *time.Timer
	stopped   bool

	// held while a commit callback runs so Stop can wait it out
	commitMu sync.Mutex
}

func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Set records raw and restarts the quiet period.
func (d *Debouncer) Set(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.raw = raw
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush commits the current raw value immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.fire(gen)
}

func (d *Debouncer) fire(gen uint64) {
	d.commitMu.Lock()
	defer d.commitMu.Unlock()

	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.committed = d.raw
	value := d.committed
	d.mu.Unlock()

	if d.commit != nil {
		d.commit(value)
	}
}

func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

func (d *Debouncer) Committed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}

// Stop cancels any pending commit. Once Stop returns no commit callback is
// running or will run. Safe to call more than once, but not from inside
// the commit callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.commitMu.Lock()
	d.commitMu.Unlock()
}
