package blockalloc

import (
	"sync"
	"testing"

	"github.com/argus-labs/ecb/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendAndRange(t *testing.T) {
	t.Parallel()

	log := New[uint64](2, 3, 4)
	for i := range 10 {
		rec := log.Append(i % 2)
		require.Len(t, rec, 3)
		rec[0] = uint64(i)
	}

	assert.Equal(t, 10, log.Len())
	assert.Equal(t, 5, log.ShardLen(0))
	assert.Equal(t, 5, log.ShardLen(1))

	// Shard 0 holds the even values, shard 1 the odd ones, each in append order.
	var got []uint64
	log.Range(func(rec []uint64) bool {
		got = append(got, rec[0])
		return true
	})
	assert.Equal(t, []uint64{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}, got)
}

func TestLog_RecordsStayValidAcrossBlocks(t *testing.T) {
	t.Parallel()

	log := New[int32](1, 2, 2)
	first := log.Append(0)
	first[1] = 11
	for range 9 {
		log.Append(0)
	}
	// Growing the shard never moves earlier blocks.
	first[0] = 7

	var head []int32
	log.Range(func(rec []int32) bool {
		head = rec
		return false
	})
	assert.Equal(t, []int32{7, 11}, head)
}

func TestLog_RecordsDoNotAlias(t *testing.T) {
	t.Parallel()

	log := New[byte](1, 4, 8)
	a := log.Append(0)
	b := log.Append(0)
	// A record's capacity ends at its stride, appends to it can't spill into its neighbor.
	assert.Equal(t, 4, cap(a))
	_ = append(a, 0xff)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestLog_ConcurrentShards(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)

	const workers = 8
	perWorker := make([]int, workers)
	for i := range perWorker {
		perWorker[i] = prng.IntN(5000)
	}

	log := New[uint64](workers, 2, 64)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker[w] {
				rec := log.Append(w)
				rec[0], rec[1] = uint64(w), uint64(i)
			}
		}()
	}
	wg.Wait()

	total := 0
	for w := range workers {
		assert.Equal(t, perWorker[w], log.ShardLen(w))
		total += perWorker[w]
	}
	assert.Equal(t, total, log.Len())

	// Property: each shard's records come back in append order.
	next := make([]uint64, workers)
	log.Range(func(rec []uint64) bool {
		require.Equal(t, next[rec[0]], rec[1])
		next[rec[0]]++
		return true
	})
}

func TestLog_ResetAndDispose(t *testing.T) {
	t.Parallel()

	log := New[uint64](1, 1, 0)
	log.Append(0)
	log.Reset()
	assert.Equal(t, 0, log.Len())

	log.Append(0)
	assert.Equal(t, 1, log.Len())

	log.Dispose()
	assert.True(t, log.Disposed())
	assert.Equal(t, 0, log.Len())
	assert.Panics(t, func() { log.Append(0) })
}
