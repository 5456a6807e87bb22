// Package testutil provides shared test infrastructure for the office-hours
// simulator: bounded joins and work models that do not depend on wall-clock
// sleeps of whole seconds.
package testutil

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"
)

// RunWithTimeout runs fn on its own goroutine and fails the test if fn has
// not returned within d. It returns true if fn finished in time.
func RunWithTimeout(t *testing.T, d time.Duration, fn func()) bool {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		t.Errorf("did not finish within %v; a goroutine is likely stuck on a signal", d)
		return false
	}
}

// FixedWork sleeps for a constant duration per call (or until ctx is done)
// and counts calls.
type FixedWork struct {
	D     time.Duration
	calls atomic.Int64
}

// SimulateWork implements sim.WorkSimulator.
func (w *FixedWork) SimulateWork(ctx context.Context, _ *rand.Rand) {
	w.calls.Add(1)
	if w.D <= 0 {
		return
	}
	t := time.NewTimer(w.D)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Calls returns how many times SimulateWork ran.
func (w *FixedWork) Calls() int64 {
	return w.calls.Load()
}

// JitterWork sleeps for a uniform duration in [Min, Max] drawn from the
// caller's RNG, so goroutines interleave differently while staying
// reproducible per seed.
type JitterWork struct {
	Min, Max time.Duration
}

// SimulateWork implements sim.WorkSimulator.
func (w JitterWork) SimulateWork(ctx context.Context, rng *rand.Rand) {
	d := w.Min
	if span := w.Max - w.Min; span > 0 {
		d += time.Duration(rng.Int63n(int64(span) + 1))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
