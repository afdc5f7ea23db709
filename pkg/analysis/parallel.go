package analysis

import (
	"runtime"
	"sync"
)

// parallelThreshold is the item count below which a chunked fork-join is not
// worth the goroutine overhead and the work runs on the calling goroutine.
const parallelThreshold = 4096

// maxWorkers returns the number of per-worker partial slots a caller must
// allocate before handing a reduction to forEachChunk.
func maxWorkers() int {
	return max(1, runtime.GOMAXPROCS(0))
}

// forEachChunk splits [0, n) into roughly equal contiguous chunks, runs fn
// for each on its own goroutine, and waits for all of them. fn receives the
// worker slot (for writing into a per-worker partial) and the half-open
// range it owns. Small inputs run inline on worker slot 0.
//
// Callers combine the per-worker partials afterwards with a commutative and
// associative operator, so chunk boundaries never affect results beyond
// floating-point reduction order.
func forEachChunk(n int, fn func(worker, start, end int)) int {
	workers := runtime.GOMAXPROCS(0)
	if n < parallelThreshold || workers < 2 {
		if n > 0 {
			fn(0, 0, n)
		}
		return 1
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	used := 0
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		used++
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			fn(w, start, end)
		}(w, start, end)
	}
	wg.Wait()
	return used
}
