package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounce_FiresOnce(t *testing.T) {
	var calls atomic.Int64
	d := NewDebounce(10*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	assert.False(t, d.Pending())
	d.Arm()
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.False(t, d.Pending())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func TestDebounce_RearmCoalesces(t *testing.T) {
	var calls atomic.Int64
	d := NewDebounce(100*time.Millisecond, func() { calls.Add(1) })
	defer d.Stop()

	// Each Arm cancels the previous one, so a burst produces a single call.
	for i := 0; i < 5; i++ {
		d.Arm()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, int64(0), calls.Load())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}

func TestDebounce_StopCancelsPending(t *testing.T) {
	var calls atomic.Int64
	d := NewDebounce(20*time.Millisecond, func() { calls.Add(1) })

	d.Arm()
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), calls.Load())

	// Arm after Stop is ignored.
	d.Arm()
	assert.False(t, d.Pending())
	d.Stop()
}

func TestDebounce_ZeroDelay(t *testing.T) {
	var calls atomic.Int64
	d := NewDebounce(0, func() { calls.Add(1) })
	defer d.Stop()

	d.Arm()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
}
