// Package schedule provides the timers that drive automatic pruning.
//
// Interval calls a function on every tick of a fixed-period ticker from a
// single worker goroutine. Debounce calls a function once, a fixed delay after
// the most recent Arm; re-arming cancels the pending call.
//
// Both own their goroutines and timers: Stop cancels anything pending and
// waits for an in-flight callback to return. Stop must not be called while
// holding a lock the callback acquires.
package schedule
