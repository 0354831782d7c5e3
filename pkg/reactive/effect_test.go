package reactive

import "testing"

func TestEffectRunsOnCreate(t *testing.T) {
	ran := false
	eff := NewEffect(func() Cleanup {
		ran = true
		return nil
	})
	defer eff.Dispose()

	if !ran {
		t.Error("effect should run immediately on creation")
	}
}

func TestEffectTracksDependencies(t *testing.T) {
	count := NewSignal(0)
	runCount := 0

	eff := NewEffect(func() Cleanup {
		_ = count.Get()
		runCount++
		return nil
	})
	defer eff.Dispose()

	if runCount != 1 {
		t.Errorf("expected 1 run, got %d", runCount)
	}

	count.Set(1)
	if runCount != 2 {
		t.Errorf("expected 2 runs after signal change, got %d", runCount)
	}

	// Same value: no re-run
	count.Set(1)
	if runCount != 2 {
		t.Errorf("same value should not re-run effect, got %d runs", runCount)
	}
}

func TestEffectCleanupBeforeRerun(t *testing.T) {
	count := NewSignal(0)
	cleanups := 0

	eff := NewEffect(func() Cleanup {
		_ = count.Get()
		return func() { cleanups++ }
	})

	count.Set(1)
	if cleanups != 1 {
		t.Errorf("expected cleanup before re-run, got %d cleanups", cleanups)
	}

	eff.Dispose()
	if cleanups != 2 {
		t.Errorf("expected cleanup on dispose, got %d cleanups", cleanups)
	}
}

func TestEffectDisposeStopsReruns(t *testing.T) {
	count := NewSignal(0)
	runCount := 0

	eff := NewEffect(func() Cleanup {
		_ = count.Get()
		runCount++
		return nil
	})

	eff.Dispose()
	count.Set(1)

	if runCount != 1 {
		t.Errorf("disposed effect must not re-run, got %d runs", runCount)
	}
}

func TestEffectRetracksEachRun(t *testing.T) {
	useA := NewSignal(true)
	a := NewSignal("a")
	b := NewSignal("b")
	runCount := 0

	eff := NewEffect(func() Cleanup {
		runCount++
		if useA.Get() {
			_ = a.Get()
		} else {
			_ = b.Get()
		}
		return nil
	})
	defer eff.Dispose()

	// Switch the branch; effect now depends on b, not a
	useA.Set(false)
	runs := runCount

	a.Set("a2")
	if runCount != runs {
		t.Errorf("effect should have dropped dependency on a, got %d runs", runCount)
	}

	b.Set("b2")
	if runCount != runs+1 {
		t.Errorf("effect should re-run on b change, got %d runs", runCount)
	}
}

func TestOnChangeSkipsFirstRun(t *testing.T) {
	count := NewSignal(0)
	calls := 0

	eff := OnChange(
		func() { _ = count.Get() },
		func() { calls++ },
	)
	defer eff.Dispose()

	if calls != 0 {
		t.Errorf("callback should not run on first pass, got %d calls", calls)
	}

	count.Set(1)
	if calls != 1 {
		t.Errorf("expected 1 call after change, got %d", calls)
	}
}
