// Package ranksort computes stable orderings of records without moving them. Both entry points
// return a permutation: records[rank[0]], records[rank[1]], ... visits the input in ascending key
// order, and records sharing a key keep their original relative order.
//
// The sort is a least significant digit radix sort over the bytes of the key. Each pass builds a
// histogram of one byte, turns it into an exclusive prefix sum and scatters indices into the other
// half of a pair of scratch buffers. Nothing but the index buffers is written, which keeps the cost
// independent of the record size.
package ranksort

import (
	"math"

	"github.com/argus-labs/ecb/pkg/assert"
)

// Int32Keyed is a record ordered by a single signed 32-bit key.
type Int32Keyed interface {
	SortKey() int32
}

// Int3 is a three component key compared lexicographically. Index 0 is the most significant.
type Int3 [3]int32

// Int3Keyed is a record ordered by a three component key.
type Int3Keyed interface {
	SortKey3() Int3
}

const (
	radix        = 256
	bytesPerWord = 4
	signBit      = 1 << 31
)

// ByInt32 returns the permutation that orders records by SortKey.
func ByInt32[T Int32Keyed](records []T) []int32 {
	n := checkLen(len(records))
	keys := make([]uint32, n)
	for i := range records {
		keys[i] = flip(records[i].SortKey())
	}
	return rank(keys, 1, n)
}

// ByInt3x32 returns the permutation that orders records by SortKey3.
func ByInt3x32[T Int3Keyed](records []T) []int32 {
	n := checkLen(len(records))
	keys := make([]uint32, n*3)
	for i := range records {
		k := records[i].SortKey3()
		keys[i*3] = flip(k[0])
		keys[i*3+1] = flip(k[1])
		keys[i*3+2] = flip(k[2])
	}
	return rank(keys, 3, n)
}

func checkLen(n int) int {
	assert.That(n <= math.MaxInt32, "ranksort: %d records exceed the int32 index range", n)
	return n
}

// flip maps a signed key onto an unsigned value with the same ordering.
func flip(k int32) uint32 {
	return uint32(k) ^ signBit
}

// rank sorts n records whose keys are stored as width consecutive words, most significant word
// first.
func rank(keys []uint32, width, n int) []int32 {
	src := make([]int32, n)
	if n == 0 {
		return src
	}
	for i := range src {
		src[i] = int32(i) //nolint:gosec // bounded by checkLen
	}
	if n == 1 {
		return src
	}
	dst := make([]int32, n)

	// All histograms are built in one sweep since they don't depend on the current order.
	passes := width * bytesPerWord
	hist := make([][radix]int32, passes)
	for i := range n {
		for w := range width {
			key := keys[i*width+w]
			base := (width - 1 - w) * bytesPerWord
			for b := range bytesPerWord {
				hist[base+b][(key>>(8*b))&0xff]++
			}
		}
	}

	for pass := range passes {
		word := width - 1 - pass/bytesPerWord
		shift := 8 * (pass % bytesPerWord)
		counts := &hist[pass]

		// A byte that is equal for every record leaves the order untouched.
		if counts[(keys[word]>>shift)&0xff] == int32(n) { //nolint:gosec // bounded by checkLen
			continue
		}

		var sum int32
		for b := range counts {
			c := counts[b]
			counts[b] = sum
			sum += c
		}

		for _, idx := range src {
			b := (keys[int(idx)*width+word] >> shift) & 0xff
			dst[counts[b]] = idx
			counts[b]++
		}
		src, dst = dst, src
	}
	return src
}
