package ranksort

import (
	"cmp"
	"math"
	"slices"
	"testing"

	"github.com/argus-labs/ecb/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyed struct {
	key int32
	tag int // original position, used to check stability
}

func (k keyed) SortKey() int32 { return k.key }

type keyed3 struct {
	key Int3
	tag int
}

func (k keyed3) SortKey3() Int3 { return k.key }

func TestByInt32_Edges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []int32
		want []int32
	}{
		{name: "empty", keys: nil, want: []int32{}},
		{name: "single", keys: []int32{42}, want: []int32{0}},
		{name: "all equal keeps order", keys: []int32{7, 7, 7, 7}, want: []int32{0, 1, 2, 3}},
		{name: "descending", keys: []int32{3, 2, 1, 0}, want: []int32{3, 2, 1, 0}},
		{
			name: "sign boundary",
			keys: []int32{0, -1, math.MaxInt32, math.MinInt32, 1},
			want: []int32{3, 1, 0, 4, 2},
		},
		{name: "ties are stable", keys: []int32{5, 1, 5, 1}, want: []int32{1, 3, 0, 2}},
		{name: "high byte only", keys: []int32{1 << 24, 0, 2 << 24}, want: []int32{1, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			records := make([]keyed, len(tt.keys))
			for i, k := range tt.keys {
				records[i] = keyed{key: k, tag: i}
			}
			assert.Equal(t, tt.want, ByInt32(records))
		})
	}
}

func TestByInt32_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := []keyed{{key: 9}, {key: -3}, {key: 4}}
	before := slices.Clone(records)
	_ = ByInt32(records)
	assert.Equal(t, before, records)
}

// -------------------------------------------------------------------------------------------------
// Model-based fuzzing
// -------------------------------------------------------------------------------------------------
// The model is slices.SortStableFunc over the original positions. Keys are drawn from both a narrow
// range, to force ties, and the full int32 range, to exercise every byte pass.
// -------------------------------------------------------------------------------------------------

func TestByInt32_ModelFuzz(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)

	const rounds = 200
	const lengthMax = 2000

	for range rounds {
		n := prng.IntN(lengthMax)
		narrow := prng.IntN(2) == 0
		records := make([]keyed, n)
		for i := range records {
			key := testutils.RandInt32(prng)
			if narrow {
				key = int32(prng.IntN(16)) - 8
			}
			records[i] = keyed{key: key, tag: i}
		}

		got := ByInt32(records)

		model := make([]int32, n)
		for i := range model {
			model[i] = int32(i)
		}
		slices.SortStableFunc(model, func(a, b int32) int {
			return cmp.Compare(records[a].key, records[b].key)
		})

		// Property: rank matches a stable comparison sort exactly.
		require.Equal(t, model, got)
		// Property: rank is a bijection over [0, n).
		assertPermutation(t, got)
	}
}

func TestByInt3x32_ModelFuzz(t *testing.T) {
	t.Parallel()
	prng := testutils.NewRand(t)

	const rounds = 100
	const lengthMax = 1500

	for range rounds {
		n := prng.IntN(lengthMax)
		records := make([]keyed3, n)
		for i := range records {
			records[i] = keyed3{
				key: Int3{int32(prng.IntN(4)), testutils.RandInt32(prng) % 3, int32(prng.IntN(1 << 20))},
				tag: i,
			}
		}

		got := ByInt3x32(records)
		assertPermutation(t, got)

		for i := 1; i < len(got); i++ {
			prev, curr := records[got[i-1]], records[got[i]]
			c := compareInt3(prev.key, curr.key)
			// Property: keys are non-decreasing.
			require.LessOrEqual(t, c, 0, "keys out of order at %d", i)
			// Property: equal keys keep their input order.
			if c == 0 {
				require.Less(t, prev.tag, curr.tag, "unstable at %d", i)
			}
		}
	}
}

func TestByInt3x32_MostSignificantFirst(t *testing.T) {
	t.Parallel()

	records := []keyed3{
		{key: Int3{1, 0, 0}},
		{key: Int3{0, 5, 9}},
		{key: Int3{0, 5, -9}},
		{key: Int3{-1, 100, 100}},
	}
	assert.Equal(t, []int32{3, 2, 1, 0}, ByInt3x32(records))
}

func compareInt3(a, b Int3) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func assertPermutation(t *testing.T, rank []int32) {
	t.Helper()
	seen := make([]bool, len(rank))
	for _, idx := range rank {
		require.False(t, seen[idx], "index %d appears twice", idx)
		seen[idx] = true
	}
}

func BenchmarkByInt32(b *testing.B) {
	records := make([]keyed, 1<<16)
	for i := range records {
		records[i] = keyed{key: int32(i*2654435761) >> 3} //nolint:gosec // hash spread
	}
	b.ResetTimer()
	for range b.N {
		_ = ByInt32(records)
	}
}
