package schedule

import (
	"sync"
	"time"
)

// Interval invokes a function on every tick of a fixed-period ticker.
type Interval struct {
	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewInterval starts a worker goroutine that calls fn every period.
// period must be positive.
func NewInterval(period time.Duration, fn func()) *Interval {
	iv := &Interval{
		ticker: time.NewTicker(period),
		stopCh: make(chan struct{}),
	}
	iv.wg.Add(1)
	go iv.worker(fn)
	return iv
}

func (iv *Interval) worker(fn func()) {
	defer iv.wg.Done()

	for {
		select {
		case <-iv.stopCh:
			return
		case <-iv.ticker.C:
			// Stop may race with a tick; prefer stopping.
			select {
			case <-iv.stopCh:
				return
			default:
			}
			fn()
		}
	}
}

// Stop stops the ticker and waits for the worker goroutine to exit.
// It is safe to call more than once.
func (iv *Interval) Stop() {
	iv.once.Do(func() {
		close(iv.stopCh)
		iv.wg.Wait()
		iv.ticker.Stop()
	})
}
