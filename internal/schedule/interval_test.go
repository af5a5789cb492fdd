package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_Ticks(t *testing.T) {
	var calls atomic.Int64
	iv := NewInterval(5*time.Millisecond, func() { calls.Add(1) })
	defer iv.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestInterval_StopHaltsTicks(t *testing.T) {
	var calls atomic.Int64
	iv := NewInterval(5*time.Millisecond, func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
	iv.Stop()

	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no ticks after Stop")

	// Idempotent.
	iv.Stop()
}

func TestInterval_StopWaitsForCallback(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	var once atomic.Bool
	iv := NewInterval(time.Millisecond, func() {
		if once.CompareAndSwap(false, true) {
			close(started)
			time.Sleep(20 * time.Millisecond)
			finished.Store(true)
		}
	})

	<-started
	iv.Stop()
	assert.True(t, finished.Load(), "Stop must wait for the running callback")
}
