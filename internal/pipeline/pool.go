package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/dmfielding/bestiary/internal/statblock"
)

// forEachIndex runs fn for each index in [0, n) behind a semaphore-bounded
// worker pool. A canceled context keeps unstarted work from running; calls
// already in flight finish.
func forEachIndex(ctx context.Context, workers, n int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			fn(idx)
		}(i)
	}
	wg.Wait()
}

// forEachRecord fans a per-entity pass out over the records. Entities are
// independent once boundaries are fixed, so no ordering is imposed.
func forEachRecord(ctx context.Context, workers int, records []*statblock.Record, fn func(*statblock.Record)) {
	forEachIndex(ctx, workers, len(records), func(i int) {
		fn(records[i])
	})
}
