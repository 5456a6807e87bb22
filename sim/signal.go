package sim

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ArrivalSignal is the counting signal the TA sleeps on. Students post it
// once per successful seat; the shutdown path posts it once more.
//
// It is a semaphore.Weighted whose whole weight is taken at construction, so
// each Post releases one unit and each Wait acquires one. Outstanding posts
// are bounded by the number of occupied chairs plus the shutdown post, which
// is why the signal is sized to capacity+1. Posting beyond that bound panics.
type ArrivalSignal struct {
	sem     *semaphore.Weighted
	pending atomic.Int64
}

// NewArrivalSignal creates a signal able to hold maxPending unconsumed posts.
func NewArrivalSignal(maxPending int64) *ArrivalSignal {
	if maxPending < 1 {
		panic(fmt.Sprintf("NewArrivalSignal: maxPending must be positive, got %d", maxPending))
	}
	sem := semaphore.NewWeighted(maxPending)
	if !sem.TryAcquire(maxPending) {
		panic("NewArrivalSignal: fresh semaphore refused its own weight")
	}
	return &ArrivalSignal{sem: sem}
}

// Post records one arrival and wakes the waiter if it is asleep.
func (a *ArrivalSignal) Post() {
	a.pending.Add(1)
	a.sem.Release(1)
}

// Wait blocks until a post is available and consumes it.
// Returns ctx.Err() if ctx is done first; no post is consumed in that case.
func (a *ArrivalSignal) Wait(ctx context.Context) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	a.pending.Add(-1)
	return nil
}

// Pending returns the number of posts not yet consumed.
func (a *ArrivalSignal) Pending() int64 {
	return a.pending.Load()
}

// CompletionSignal is a binary signal owned by one student. The TA posts it
// when that student's session ends; the shutdown path posts it once more.
// Posting an already-posted signal is a no-op.
type CompletionSignal struct {
	ch chan struct{}
}

// NewCompletionSignal creates an unposted signal.
func NewCompletionSignal() *CompletionSignal {
	return &CompletionSignal{ch: make(chan struct{}, 1)}
}

// Post sets the signal. Never blocks.
func (c *CompletionSignal) Post() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until the signal is set and clears it.
func (c *CompletionSignal) Wait(ctx context.Context) error {
	select {
	case <-c.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsSet reports whether a post is waiting to be consumed.
func (c *CompletionSignal) IsSet() bool {
	return len(c.ch) > 0
}
