package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Rows calls fn for every row in [0, n), splitting the rows into contiguous
// bands run on at most GOMAXPROCS goroutines. fn must only touch state owned
// by its row. Rows returns once every call has finished.
func Rows(n int, fn func(y int)) {
	workers := min(runtime.GOMAXPROCS(0), n)
	if workers <= 1 {
		for y := range n {
			fn(y)
		}
		return
	}

	band := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += band {
		end := min(start+band, n)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}
