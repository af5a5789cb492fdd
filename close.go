package slotpool

// Close stops the pool's prune timer, waits for a prune in progress to
// finish and returns the pool's slots to its resource controller.
//
// Close does not wait for outstanding handles. After Close every handle is
// invalid and Checkout, Release and Prune fail with ErrClosed. Close is safe
// to call more than once.
func (p *Pool[C, K, V]) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	scheduler := p.scheduler
	p.scheduler = nil
	capacity, used := p.table.Capacity(), p.table.Used()
	p.mu.Unlock()

	// The timer callback takes p.mu, so it must be stopped without holding it.
	if scheduler != nil {
		scheduler.Stop()
	}

	p.rc.ReleaseSlots(int64(capacity))
	p.logger.LogClose(capacity, used)
	return nil
}
