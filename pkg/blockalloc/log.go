// Package blockalloc provides an append-only record log split into shards. Each shard is owned by
// exactly one writer at a time, so appends need no locks or atomics. Records are fixed-stride
// slices of T carved out of fixed-size blocks; a block is never reallocated once handed out, which
// keeps previously returned record slices valid while the shard keeps growing.
//
// Reading (Len, Range) is only safe once every writer has finished. The caller enforces that
// barrier, typically by waiting on the job that ran the writers.
package blockalloc

import (
	"github.com/argus-labs/ecb/pkg/assert"
)

const cacheLineSize = 64

// DefaultRecordsPerBlock is used when New is given a non-positive block size.
const DefaultRecordsPerBlock = 1024

// shard is a single writer's private append log. It is padded so two shards never share a cache
// line.
type shard[T any] struct {
	_      [cacheLineSize]byte
	blocks [][]T // full blocks followed by the block currently being filled
	used   int   // records written into the last block
	count  int   // records across all blocks
	_      [cacheLineSize]byte
}

// Log is a sharded append-only log of fixed-stride records.
type Log[T any] struct {
	shards          []shard[T]
	stride          int // elements of T per record
	recordsPerBlock int
	disposed        bool
}

// New creates a log with the given number of shards. stride is the number of T elements in one
// record and must be positive.
func New[T any](shards, stride, recordsPerBlock int) *Log[T] {
	assert.That(shards > 0, "blockalloc: shard count must be positive, got %d", shards)
	assert.That(stride > 0, "blockalloc: stride must be positive, got %d", stride)
	if recordsPerBlock <= 0 {
		recordsPerBlock = DefaultRecordsPerBlock
	}
	return &Log[T]{
		shards:          make([]shard[T], shards),
		stride:          stride,
		recordsPerBlock: recordsPerBlock,
	}
}

// Append reserves one zeroed record in the given shard and returns it. The returned slice has
// length stride and stays valid until Reset or Dispose.
func (l *Log[T]) Append(shardIndex int) []T {
	assert.That(!l.disposed, "blockalloc: append on disposed log")
	assert.That(shardIndex >= 0 && shardIndex < len(l.shards),
		"blockalloc: shard %d out of range [0, %d)", shardIndex, len(l.shards))

	s := &l.shards[shardIndex]
	if len(s.blocks) == 0 || s.used == l.recordsPerBlock {
		s.blocks = append(s.blocks, make([]T, l.recordsPerBlock*l.stride))
		s.used = 0
	}

	block := s.blocks[len(s.blocks)-1]
	start := s.used * l.stride
	s.used++
	s.count++
	return block[start : start+l.stride : start+l.stride]
}

// Len returns the number of records across all shards.
func (l *Log[T]) Len() int {
	n := 0
	for i := range l.shards {
		n += l.shards[i].count
	}
	return n
}

// ShardLen returns the number of records in one shard.
func (l *Log[T]) ShardLen(shardIndex int) int {
	return l.shards[shardIndex].count
}

// Shards returns the number of shards.
func (l *Log[T]) Shards() int {
	return len(l.shards)
}

// Range calls fn for every record, shard by shard and in append order within a shard. It stops
// early when fn returns false.
func (l *Log[T]) Range(fn func(rec []T) bool) {
	for i := range l.shards {
		s := &l.shards[i]
		for b, block := range s.blocks {
			used := l.recordsPerBlock
			if b == len(s.blocks)-1 {
				used = s.used
			}
			for r := range used {
				start := r * l.stride
				if !fn(block[start : start+l.stride : start+l.stride]) {
					return
				}
			}
		}
	}
}

// Reset drops every record but keeps the shard layout.
func (l *Log[T]) Reset() {
	for i := range l.shards {
		l.shards[i].blocks = nil
		l.shards[i].used = 0
		l.shards[i].count = 0
	}
}

// Dispose releases all blocks. The log must not be used afterwards.
func (l *Log[T]) Dispose() {
	l.Reset()
	l.shards = nil
	l.disposed = true
}

// Disposed reports whether Dispose has been called.
func (l *Log[T]) Disposed() bool {
	return l.disposed
}
