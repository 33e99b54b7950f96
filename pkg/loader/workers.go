package loader

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// dispatcher bounds how many worker goroutines run at once — adapted
// from MadAppGang/dingo's pkg/build/workspace.go buildParallel, whose
// buffered-channel semaphore this upgrades to golang.org/x/sync/semaphore,
// a dependency already present in the pack (funvibe-funxy, breadchris-yaegi)
// for the same bounded-fan-out purpose.
type dispatcher struct {
	sem *semaphore.Weighted
	ctx context.Context
}

func newDispatcher(maxWorkers int) *dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &dispatcher{
		sem: semaphore.NewWeighted(int64(maxWorkers)),
		ctx: context.Background(),
	}
}

// Go acquires a slot and runs fn in its own goroutine, releasing the slot
// when fn returns. Acquire blocks if every slot is in use.
func (d *dispatcher) Go(fn func()) {
	_ = d.sem.Acquire(d.ctx, 1)
	go func() {
		defer d.sem.Release(1)
		fn()
	}()
}
