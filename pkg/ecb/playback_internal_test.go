package ecb

import (
	"context"
	"testing"

	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/argus-labs/ecb/pkg/jobs"
	. "github.com/argus-labs/ecb/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayback_LastWriteWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, es := newTestStore(t, 2)
	buf, err := NewApplyBuffer1[Health](w.Registry(), WithShards(2))
	require.NoError(t, err)

	// Recorded out of order: the higher key still wins.
	require.NoError(t, buf.AddWithKey(5, es[0], Health{Value: 50}))
	require.NoError(t, buf.AddWithKey(1, es[0], Health{Value: 10}))

	// Equal keys: the later record wins, shard order first.
	writer := buf.AsParallelWriter()
	require.NoError(t, writer.AddWithKey(1, 3, es[1], Health{Value: 300}))
	require.NoError(t, writer.AddWithKey(0, 3, es[1], Health{Value: 100}))
	require.NoError(t, writer.AddWithKey(0, 3, es[1], Health{Value: 200}))

	require.NoError(t, buf.Playback(ctx, w))
	assert.Equal(t, int32(50), health(t, w, es[0]))
	assert.Equal(t, int32(300), health(t, w, es[1]))
}

func TestPlayback_KeepsExistingComponents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, es := newTestStore(t, 1)
	_, err := ecs.Register[Velocity](w.Registry())
	require.NoError(t, err)
	require.NoError(t, ecs.Set(w, es[0], Velocity{X: 9}))

	buf, err := NewApplyBuffer2[Health, Position](w.Registry())
	require.NoError(t, err)
	require.NoError(t, AddTag[Frozen](buf))
	require.NoError(t, buf.Add(es[0], Health{Value: 1}, Position{X: 1, Y: 2, Z: 3}))
	require.NoError(t, buf.Playback(ctx, w))

	v, err := ecs.Get[Velocity](w, es[0])
	require.NoError(t, err)
	assert.Equal(t, Velocity{X: 9}, v)
	p, err := ecs.Get[Position](w, es[0])
	require.NoError(t, err)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, p)
	assert.True(t, ecs.Has[Frozen](w, es[0]))
}

func TestPlayback_DestroyedTargetPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  Policy
		wantErr error
	}{
		{name: "drop", policy: PolicyDrop},
		{name: "throw", policy: PolicyThrow, wantErr: ErrDestroyedTarget},
		{name: "substitute", policy: PolicySubstitute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			w, es := newTestStore(t, 3)
			buf, err := NewApplyBuffer1[Health](w.Registry(), WithPolicy(tt.policy))
			require.NoError(t, err)
			for i, e := range es {
				require.NoError(t, buf.Add(e, Health{Value: int32(i + 1)}))
			}
			require.NoError(t, w.Destroy(es[1:2]))
			before := snapshotBytes(t, w)

			err = buf.Playback(ctx, w)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				// Nothing was applied and the buffer can still be played back.
				assert.Equal(t, before, snapshotBytes(t, w))
				assert.Equal(t, StateRecording, buf.State())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int32(1), health(t, w, es[0]))
			assert.Equal(t, int32(3), health(t, w, es[2]))
			assert.False(t, w.Exists(es[1]))
			assert.Equal(t, 2, w.Len())
		})
	}
}

func TestPlayback_SubstituteDoesNotLeak(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w, es := newTestStore(t, 4)
	require.NoError(t, w.Destroy(es[:3]))

	buf, err := NewApplyBuffer1[Health](w.Registry(), WithPolicy(PolicySubstitute))
	require.NoError(t, err)
	for _, e := range es {
		require.NoError(t, buf.Add(e, Health{Value: 7}))
	}
	require.NoError(t, buf.Playback(ctx, w))

	assert.Equal(t, 1, w.Len())
	assert.Equal(t, int32(7), health(t, w, es[3]))
}

func TestPlayback_MissingStore(t *testing.T) {
	t.Parallel()

	buf, err := NewApplyBuffer1[Health](ecs.NewRegistry())
	require.NoError(t, err)

	require.ErrorIs(t, buf.Playback(context.Background(), nil), ErrMissingStore)
	var w *ecs.World
	require.ErrorIs(t, buf.Playback(context.Background(), w), ErrMissingStore)
	assert.Equal(t, StateRecording, buf.State())
}

func TestPlayback_Empty(t *testing.T) {
	t.Parallel()

	w, _ := newTestStore(t, 0)
	buf, err := NewApplyBuffer1[Health](w.Registry())
	require.NoError(t, err)
	require.NoError(t, buf.Playback(context.Background(), w))
	assert.Equal(t, StatePlayedBack, buf.State())
	assert.Equal(t, 0, w.Len())
}

// TestPlayback_ParallelDeterminism records the same commands from one goroutine and from many and
// checks both worlds end up identical. Keys are distinct so the result doesn't depend on ties.
func TestPlayback_ParallelDeterminism(t *testing.T) {
	t.Parallel()

	const (
		entities = 3*ecs.PageCapacity + 17
		commands = 4 * entities
		workers  = 8
	)
	ctx := context.Background()
	prng := NewRand(t)
	keys := make([]int32, commands)
	for i, k := range prng.Perm(commands) {
		keys[i] = int32(k - commands/2) //nolint:gosec // it's ok
	}
	value := func(i int) (Health, Position) {
		return Health{Value: int32(i)}, Position{X: float32(i), Y: float32(keys[i])}
	}

	// Serial.
	serialWorld, serialEs := newTestStore(t, entities)
	serial, err := NewApplyBuffer2[Health, Position](serialWorld.Registry(), WithShards(1))
	require.NoError(t, err)
	for i := range commands {
		h, p := value(i)
		require.NoError(t, serial.AddWithKey(keys[i], serialEs[i%entities], h, p))
	}
	require.NoError(t, serial.Playback(ctx, serialWorld))

	// Parallel recording and write-back.
	parallelWorld, parallelEs := newTestStore(t, entities)
	parallel, err := NewApplyBuffer2[Health, Position](parallelWorld.Registry(),
		WithShards(workers), WithBlockRecords(64), WithWriteBackWorkers(4))
	require.NoError(t, err)
	writer := parallel.AsParallelWriter()
	err = jobs.ParallelFor(ctx, commands, workers, func(_ context.Context, worker, i int) error {
		h, p := value(i)
		return writer.AddWithKey(worker, keys[i], parallelEs[i%entities], h, p)
	})
	require.NoError(t, err)
	require.Equal(t, commands, parallel.Count())
	require.NoError(t, parallel.Playback(ctx, parallelWorld))

	assert.Equal(t, snapshotBytes(t, serialWorld), snapshotBytes(t, parallelWorld))
}

// TestPlayback_ParallelWriteBackMatchesSerial plays the same substitute-policy commands back with
// one write-back worker and with several, over targets spread across pages with some destroyed.
func TestPlayback_ParallelWriteBackMatchesSerial(t *testing.T) {
	t.Parallel()

	const entities = 3*ecs.PageCapacity + 5
	ctx := context.Background()
	prng := NewRand(t)

	commands := 2 * entities
	targets := make([]int, commands)
	keys := make([]int32, commands)
	for i, k := range prng.Perm(commands) {
		targets[i] = prng.IntN(entities)
		keys[i] = int32(k) //nolint:gosec // it's ok
	}

	run := func(workers int) *ecs.World {
		w, es := newTestStore(t, entities)
		var destroyed []ecs.Entity
		for i := 0; i < entities; i += 7 {
			destroyed = append(destroyed, es[i])
		}
		require.NoError(t, w.Destroy(destroyed))

		buf, err := NewApplyBuffer2[Health, Position](w.Registry(),
			WithShards(1), WithPolicy(PolicySubstitute), WithWriteBackWorkers(workers))
		require.NoError(t, err)
		for i := range commands {
			v := int32(i) //nolint:gosec // it's ok
			err := buf.AddWithKey(keys[i], es[targets[i]], Health{Value: v}, Position{X: float32(v)})
			require.NoError(t, err)
		}
		require.NoError(t, buf.Playback(ctx, w))

		for _, e := range destroyed {
			assert.False(t, w.Exists(e))
		}
		assert.Equal(t, entities-len(destroyed), w.Len())
		return w
	}

	serial := run(1)
	parallel := run(4)
	assert.Equal(t, snapshotBytes(t, serial), snapshotBytes(t, parallel))
}
