package throttle

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bindkit-dev/bindkit/pkg/reactive"
)

func TestValueLeadingEmission(t *testing.T) {
	v := NewValue("", 50*time.Millisecond)
	defer v.Stop()

	v.Set("first")

	if got := v.Peek(); got != "first" {
		t.Errorf("first value in a window should emit immediately, got %q", got)
	}
}

func TestValueCoalescesWithinWindow(t *testing.T) {
	v := NewValue(0, 40*time.Millisecond)
	defer v.Stop()

	var emissions atomic.Int32
	eff := reactive.NewEffect(func() reactive.Cleanup {
		_ = v.Get()
		emissions.Add(1)
		return nil
	})
	defer eff.Dispose()

	v.Set(1) // leading emission
	v.Set(2) // coalesced
	v.Set(3) // coalesced, latest wins

	if got := v.Peek(); got != 1 {
		t.Errorf("mid-window values must not emit early, got %d", got)
	}

	time.Sleep(100 * time.Millisecond)

	if got := v.Peek(); got != 3 {
		t.Errorf("expected trailing emission of latest value 3, got %d", got)
	}
	// Initial effect run + leading emission + one trailing emission
	if got := emissions.Load(); got != 3 {
		t.Errorf("expected 3 effect runs, got %d", got)
	}
}

func TestValueNewWindowAfterExpiry(t *testing.T) {
	v := NewValue("", 30*time.Millisecond)
	defer v.Stop()

	v.Set("a")
	time.Sleep(60 * time.Millisecond)
	v.Set("b")

	if got := v.Peek(); got != "b" {
		t.Errorf("a value after window expiry should emit immediately, got %q", got)
	}
}

func TestValueStopDropsTrailing(t *testing.T) {
	v := NewValue("", 30*time.Millisecond)

	v.Set("lead")
	v.Set("trail")
	v.Stop()
	time.Sleep(80 * time.Millisecond)

	if got := v.Peek(); got != "lead" {
		t.Errorf("Stop should drop the trailing emission, got %q", got)
	}
}

func TestFuncAtMostOncePerWindow(t *testing.T) {
	var calls atomic.Int32
	throttled, _ := Func(40*time.Millisecond, func() {
		calls.Add(1)
	})

	for i := 0; i < 10; i++ {
		throttled()
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 execution in window, got %d", got)
	}

	time.Sleep(60 * time.Millisecond)
	throttled()
	if got := calls.Load(); got != 2 {
		t.Errorf("expected execution in the next window, got %d", got)
	}
}

func TestFuncCancelReopensWindow(t *testing.T) {
	var calls atomic.Int32
	throttled, cancel := Func(time.Hour, func() {
		calls.Add(1)
	})

	throttled()
	throttled() // dropped, window open for an hour
	cancel()
	throttled() // window reopened

	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 executions after cancel, got %d", got)
	}
}
