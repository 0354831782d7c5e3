// Package reactive provides the observer core that couples bindkit helpers
// to a view layer's refresh cycle.
//
// Helpers such as form.Form and fetch.Fetcher keep their state in signals.
// A caller that wants to refresh a view when helper state changes wraps the
// reads in an Effect; the effect re-runs whenever any signal it read changes.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Memo[T] is a cached derived computation:
//
//	doubled := NewMemo(func() int { return count.Get() * 2 })
//
// NewEffect runs side effects when dependencies change:
//
//	eff := NewEffect(func() Cleanup {
//	    render(count.Get())
//	    return nil
//	})
//	defer eff.Dispose()
//
// # Batching
//
// Multiple signal updates can be batched to trigger a single notification:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // Single notification after all updates
//
// # Thread Safety
//
// All primitives are safe for concurrent use. The dependency-tracking
// context is per-goroutine, so effects only track signals read on the
// goroutine running the effect body.
package reactive
