// Package jobs runs indexed work on a bounded set of workers and hands out completion handles for
// work that must wait on other work.
package jobs

import (
	"context"
	"runtime"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// Handle is closed when the work it belongs to has finished.
type Handle <-chan struct{}

// Done returns a handle that is already complete.
func Done() Handle {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Go runs fn on a new goroutine and returns a handle that completes when fn returns.
func Go(fn func()) Handle {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		fn()
	}()
	return ch
}

// After runs fn once dep completes. A nil dep counts as complete.
func After(dep Handle, fn func()) Handle {
	if dep == nil {
		return Go(fn)
	}
	return Go(func() {
		<-dep
		fn()
	})
}

// Wait blocks until h completes or ctx is done.
func Wait(ctx context.Context, h Handle) error {
	select {
	case <-h:
		return nil
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "wait for job")
	}
}

// Workers returns the number of workers to use for a requested count. Zero or less means one per
// logical CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ParallelFor calls fn for every i in [0, n) using up to workers goroutines. Each goroutine owns a
// worker index in [0, workers) for its whole life, so fn may write to per-worker state indexed by
// worker without synchronization. Items are strided across workers: worker w processes
// i = w, w+workers, w+2*workers and so on.
//
// The first error cancels the context passed to the other calls and is returned.
func ParallelFor(ctx context.Context, n, workers int, fn func(ctx context.Context, worker, i int) error) error {
	if n <= 0 {
		return nil
	}
	workers = min(Workers(workers), n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := range workers {
		g.Go(func() error {
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return eris.Wrap(err, "parallel for canceled")
				}
				if err := fn(ctx, w, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
