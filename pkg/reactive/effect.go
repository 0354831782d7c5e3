package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect represents a reactive side effect that runs when its dependencies
// change. Effects run immediately when created, and re-run whenever any
// signal or memo they read during execution changes. They can return a
// Cleanup function that is called before the effect re-runs or when the
// effect is disposed.
//
// Each bindkit helper instance owns the effects observing it; there is no
// shared scope hierarchy, so callers are responsible for calling Dispose
// when the observing view goes away.
type Effect struct {
	id uint64

	// fn is the effect function to run.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// pending indicates the effect is already scheduled for a re-run.
	pending atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// NewEffect creates a new effect and runs it immediately.
// The effect re-runs when any signal or memo it reads changes. If the
// function returns a Cleanup, it is called before the effect re-runs
// and when the effect is disposed.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}
	e.run()
	return e
}

// MarkDirty re-runs the effect.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	// Use CAS so that batched duplicate notifications collapse to one run
	if e.pending.CompareAndSwap(false, true) {
		e.run()
	}
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function on the calling goroutine.
// This is called during initial creation and when dependencies change.
// Effect bodies must not write signals they read; that would re-enter run.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.pending.Store(false)

	// Run cleanup from previous run
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources; the new run re-tracks from scratch
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Track new sources during execution
	oldListener := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(oldListener)
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose cleans up the effect and unsubscribes from all sources.
// After Dispose the effect never runs again.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// OnChange creates an effect that skips the callback on the first run.
// The deps function is called to establish dependencies; the callback only
// runs when those dependencies change afterwards.
func OnChange(deps func(), callback func()) *Effect {
	first := true
	return NewEffect(func() Cleanup {
		deps() // Always call to track dependencies
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}
