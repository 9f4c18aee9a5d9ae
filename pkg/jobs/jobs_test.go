package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/argus-labs/ecb/pkg/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelFor_VisitsEveryIndexOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		n, workers int
	}{
		{name: "empty", n: 0, workers: 4},
		{name: "single worker", n: 100, workers: 1},
		{name: "more workers than items", n: 3, workers: 16},
		{name: "uneven stripes", n: 1001, workers: 7},
		{name: "default workers", n: 500, workers: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			visits := make([]atomic.Int32, tt.n)
			maxWorker := jobs.Workers(tt.workers)
			err := jobs.ParallelFor(context.Background(), tt.n, tt.workers,
				func(_ context.Context, worker, i int) error {
					assert.GreaterOrEqual(t, worker, 0)
					assert.Less(t, worker, maxWorker)
					visits[i].Add(1)
					return nil
				})
			require.NoError(t, err)
			for i := range visits {
				assert.Equal(t, int32(1), visits[i].Load(), "index %d", i)
			}
		})
	}
}

func TestParallelFor_WorkerOwnsItsIndex(t *testing.T) {
	t.Parallel()

	const n, workers = 10_000, 8
	// Plain ints: each worker only touches its own slot.
	counts := make([]int, workers)
	err := jobs.ParallelFor(context.Background(), n, workers, func(_ context.Context, worker, _ int) error {
		counts[worker]++
		return nil
	})
	require.NoError(t, err)

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, n, total)
}

func TestParallelFor_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := jobs.ParallelFor(context.Background(), 100, 4, func(_ context.Context, _, i int) error {
		if i == 42 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestAfter(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var order []string
	first := jobs.Go(func() {
		<-release
		order = append(order, "first")
	})
	second := jobs.After(first, func() {
		order = append(order, "second")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, jobs.Wait(ctx, second))

	close(release)
	require.NoError(t, jobs.Wait(context.Background(), second))
	assert.Equal(t, []string{"first", "second"}, order)

	require.NoError(t, jobs.Wait(context.Background(), jobs.After(nil, func() {})))
	require.NoError(t, jobs.Wait(context.Background(), jobs.Done()))
}
