// Package throttle limits actions to at most one per fixed time window,
// regardless of how often new values or calls arrive.
//
// Value[T] is the reactive form: the first Set in a window emits
// immediately, later ones are coalesced into a single trailing emission of
// the latest value when the window expires. Func is the plain-function
// form: calls inside an open window are dropped.
package throttle

import (
	"sync"
	"time"

	"github.com/bindkit-dev/bindkit/pkg/reactive"
)

// DefaultInterval is the window used by NewValue when none is given.
// Func has no default; its interval is required.
const DefaultInterval = 500 * time.Millisecond

// Value rate-limits a stream of values to at most one emission per
// interval. The latest value always wins: a value arriving mid-window is
// delivered when the window expires.
type Value[T any] struct {
	out      *reactive.Signal[T]
	interval time.Duration

	mu          sync.Mutex
	nextAllowed time.Time
	timer       *time.Timer
	pending     T
	hasPending  bool
	stopped     bool
}

// NewValue creates a throttled value holding initial.
// An interval of zero or less means DefaultInterval.
func NewValue[T any](initial T, interval time.Duration) *Value[T] {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Value[T]{
		out:      reactive.NewSignal(initial),
		interval: interval,
	}
}

// Set feeds a new value in. If the window is open the value emits
// immediately; otherwise it replaces the pending value for the trailing
// emission.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()

	if v.stopped {
		v.mu.Unlock()
		return
	}

	now := time.Now()
	if now.Before(v.nextAllowed) {
		// Window still open: coalesce into the trailing emission
		v.pending = val
		v.hasPending = true
		if v.timer == nil {
			v.timer = time.AfterFunc(v.nextAllowed.Sub(now), v.emitPending)
		}
		v.mu.Unlock()
		return
	}

	v.nextAllowed = now.Add(v.interval)
	v.mu.Unlock()

	v.out.Set(val)
}

// Get returns the throttled value, subscribing the current listener.
func (v *Value[T]) Get() T {
	return v.out.Get()
}

// Peek returns the throttled value without subscribing.
func (v *Value[T]) Peek() T {
	return v.out.Peek()
}

// Stop cancels any pending trailing emission and ignores further Set calls.
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopped = true
	v.hasPending = false
	if v.timer != nil {
		v.timer.Stop()
	}
}

// emitPending delivers the trailing value when the window expires.
func (v *Value[T]) emitPending() {
	v.mu.Lock()
	v.timer = nil
	if !v.hasPending || v.stopped {
		v.mu.Unlock()
		return
	}
	val := v.pending
	v.hasPending = false
	v.nextAllowed = time.Now().Add(v.interval)
	v.mu.Unlock()

	v.out.Set(val)
}

// Func returns a throttled function that executes f at most once per
// interval; calls while the window is open are dropped. The interval is
// required.
//
// The returned cancel function closes the current window so the next call
// executes immediately. Both returned functions are safe for concurrent
// use.
func Func(interval time.Duration, f func()) (throttled func(), cancel func()) {
	var mu sync.Mutex
	var nextAllowed time.Time

	throttled = func() {
		mu.Lock()
		now := time.Now()
		if now.Before(nextAllowed) {
			mu.Unlock()
			return
		}
		nextAllowed = now.Add(interval)
		mu.Unlock()

		f()
	}

	cancel = func() {
		mu.Lock()
		defer mu.Unlock()

		nextAllowed = time.Time{}
	}

	return throttled, cancel
}
