// Package debounce delays acting on a value or function call until a quiet
// period of no new activity has elapsed.
//
// Value[T] is the reactive form: Set feeds it raw updates and the debounced
// result is readable (and observable via pkg/reactive) once the input has
// been stable for the configured wait. Func is the plain-function form:
// every call resets the pending timer and only the last call within a quiet
// window executes.
package debounce

import (
	"sync"
	"time"

	"github.com/bindkit-dev/bindkit/pkg/reactive"
)

// DefaultWait is the wait used when none is given.
const DefaultWait = 500 * time.Millisecond

// Value debounces a stream of values. Set replaces the pending value and
// resets the timer; the output signal emits the latest value only after
// wait has elapsed with no new Set.
type Value[T any] struct {
	out  *reactive.Signal[T]
	wait time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	pending    T
	hasPending bool
	stopped    bool
}

// NewValue creates a debounced value holding initial.
// A wait of zero or less means DefaultWait.
func NewValue[T any](initial T, wait time.Duration) *Value[T] {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Value[T]{
		out:  reactive.NewSignal(initial),
		wait: wait,
	}
}

// Set feeds a new value in. Any previously pending value is replaced and
// the quiet-period timer restarts.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped {
		return
	}

	v.pending = val
	v.hasPending = true

	if v.timer == nil {
		v.timer = time.AfterFunc(v.wait, v.emit)
	} else {
		v.timer.Reset(v.wait)
	}
}

// Get returns the debounced value, subscribing the current listener.
func (v *Value[T]) Get() T {
	return v.out.Get()
}

// Peek returns the debounced value without subscribing.
func (v *Value[T]) Peek() T {
	return v.out.Peek()
}

// Flush emits any pending value immediately instead of waiting out the
// quiet period.
func (v *Value[T]) Flush() {
	v.emit()
}

// Stop cancels any pending emission and ignores further Set calls.
// The output keeps its last emitted value.
func (v *Value[T]) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.stopped = true
	v.hasPending = false
	if v.timer != nil {
		v.timer.Stop()
	}
}

// emit publishes the pending value, outside the lock so observers may call
// back into the Value.
func (v *Value[T]) emit() {
	v.mu.Lock()
	if !v.hasPending {
		v.mu.Unlock()
		return
	}
	val := v.pending
	v.hasPending = false
	if v.timer != nil {
		v.timer.Stop()
	}
	v.mu.Unlock()

	v.out.Set(val)
}

// Func returns a debounced function that delays invoking f until wait has
// elapsed since the last call. Each call resets the pending timer, so only
// the last call in any quiet window executes. A wait of zero or less means
// DefaultWait.
//
// The returned cancel function drops any pending invocation; calling it is
// optional. Both returned functions are safe for concurrent use.
//
// f runs on the timer's goroutine and is not waited for, so it must be
// safe to invoke again before a previous invocation returns.
func Func(wait time.Duration, f func()) (debounced func(), cancel func()) {
	if wait <= 0 {
		wait = DefaultWait
	}

	var mu sync.Mutex
	timer := stoppedTimer(f)

	debounced = func() {
		mu.Lock()
		defer mu.Unlock()

		timer.Reset(wait)
	}

	cancel = func() {
		mu.Lock()
		defer mu.Unlock()

		timer.Stop()
	}

	return debounced, cancel
}

// stoppedTimer returns a timer that will invoke f when it fires, but which
// is not currently running.
func stoppedTimer(f func()) *time.Timer {
	timer := time.AfterFunc(time.Hour, f)
	timer.Stop()
	return timer
}
