// Package parallel runs independent work items: whole files through a
// worker Pool, image rows through Rows.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues a job. It may block until a worker is free.
	WorkerFunc func(func())
	// WaitFunc blocks until queued jobs are finished. With done set, the
	// pool stops accepting jobs first.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	Workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc

	wg sync.WaitGroup
}

// Start launches numWorkers workers, GOMAXPROCS when numWorkers < 1. A pool
// of one worker runs every job inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	jobs := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range jobs {
				f()
			}
		})
	}

	pool.Do = func(f func()) {
		jobs <- f
	}
	pool.Cancel = sync.OnceFunc(func() { close(jobs) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}

	return pool
}
