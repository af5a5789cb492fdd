package schedule

import (
	"sync"
	"time"
)

// Debounce calls a function once, delay after the most recent Arm.
// At most one call is pending at any time.
type Debounce struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64
	stopped bool
	running sync.WaitGroup
}

// NewDebounce creates an unarmed Debounce.
func NewDebounce(delay time.Duration, fn func()) *Debounce {
	return &Debounce{delay: delay, fn: fn}
}

// Arm schedules fn to run after the delay, cancelling any pending call.
// Arm after Stop is a no-op.
func (d *Debounce) Arm() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs fn unless the timer was superseded by a later Arm or by Stop.
// time.Timer.Stop does not wait for an already started AfterFunc, so the
// generation check is what guarantees a single call per Arm.
func (d *Debounce) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn()
}

// Pending reports whether a call is scheduled and has not started yet.
func (d *Debounce) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending call, if any, and waits for a call already in
// progress to return. It is safe to call more than once.
func (d *Debounce) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.running.Wait()
}
