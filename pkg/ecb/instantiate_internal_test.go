package ecb

import (
	"context"
	"testing"

	"github.com/argus-labs/ecb/pkg/ecs"
	. "github.com/argus-labs/ecb/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts the store calls playback makes.
type countingStore struct {
	*ecs.World
	instantiate   int
	batch         int
	batchSizes    []int
	addComponents int
}

func (s *countingStore) Instantiate(prefab ecs.Entity) (ecs.Entity, error) {
	s.instantiate++
	return s.World.Instantiate(prefab)
}

func (s *countingStore) InstantiateBatch(primary ecs.Entity, count int) ([]ecs.Entity, error) {
	s.batch++
	s.batchSizes = append(s.batchSizes, count)
	return s.World.InstantiateBatch(primary, count)
}

func (s *countingStore) AddComponents(es []ecs.Entity, set ecs.ComponentSet) error {
	s.addComponents++
	return s.World.AddComponents(es, set)
}

// newPrefabs creates prefabs whose Position.X is their position in the returned slice.
func newPrefabs(t *testing.T, w *ecs.World, n int) []ecs.Entity {
	t.Helper()
	posID, err := ecs.Register[Position](w.Registry())
	require.NoError(t, err)
	prefabs := make([]ecs.Entity, n)
	for i := range prefabs {
		prefabs[i], err = w.Spawn(ecs.NewComponentSet(posID))
		require.NoError(t, err)
		require.NoError(t, ecs.Set(w, prefabs[i], Position{X: float32(i)}))
	}
	return prefabs
}

func TestInstantiate_GroupsByPrefab(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &countingStore{World: ecs.NewWorld(ecs.NewRegistry())}
	prefabs := newPrefabs(t, store.World, 2)

	type call struct {
		entities []ecs.Entity
		owners   []Owner
	}
	var calls []call
	link := func(_ context.Context, s Store, es []ecs.Entity, owners []*Owner) error {
		assert.Same(t, store, s)
		c := call{entities: append([]ecs.Entity(nil), es...)}
		for _, o := range owners {
			c.owners = append(c.owners, *o)
		}
		calls = append(calls, c)
		return nil
	}

	buf, err := NewInstantiateBuffer2(store.Registry(), Data[Health](), Command("link", link))
	require.NoError(t, err)

	// 7 records of prefab 0 and 3 of prefab 1, interleaved, with descending keys.
	const records = 10
	which := []int{0, 1, 0, 0, 1, 0, 0, 1, 0, 0}
	for i := range records {
		key := int32(records - i)
		owner := Owner{Index: uint32(i), Generation: uint32(which[i])} //nolint:gosec // it's ok
		require.NoError(t, buf.AddWithKey(key, prefabs[which[i]], Health{Value: int32(i)}, owner))
	}
	require.NoError(t, buf.Playback(ctx, store))

	assert.Equal(t, 2, store.instantiate)
	assert.Equal(t, 2, store.batch)
	assert.ElementsMatch(t, []int{6, 2}, store.batchSizes)
	assert.Equal(t, 1, store.addComponents)
	assert.Equal(t, 2+records, store.Len())

	require.Len(t, calls, 1)
	got := calls[0]
	require.Len(t, got.entities, records)
	for k, e := range got.entities {
		o := got.owners[k]
		// Ascending keys means the last recorded command comes first.
		assert.Equal(t, uint32(records-1-k), o.Index)
		assert.Equal(t, int32(o.Index), health(t, store.World, e)) //nolint:gosec // it's ok
		p, err := ecs.Get[Position](store.World, e)
		require.NoError(t, err)
		assert.Equal(t, float32(o.Generation), p.X)
	}
	assert.False(t, ecs.Has[Owner](store.World, got.entities[0]))
}

func TestInstantiate_MissingPrefab(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := ecs.NewWorld(ecs.NewRegistry())
	prefabs := newPrefabs(t, w, 2)

	buf, err := NewInstantiateBuffer1(w.Registry(), Data[Health]())
	require.NoError(t, err)
	require.NoError(t, buf.Add(prefabs[0], Health{Value: 1}))
	require.NoError(t, buf.Add(prefabs[1], Health{Value: 2}))
	require.NoError(t, w.Destroy(prefabs[1:]))
	before := snapshotBytes(t, w)

	err = buf.Playback(ctx, w)
	require.ErrorIs(t, err, ErrInvalidTarget)
	assert.Equal(t, before, snapshotBytes(t, w))
	assert.Equal(t, StateRecording, buf.State())
}

func TestInstantiate_CommandsRunInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := ecs.NewWorld(ecs.NewRegistry())
	prefabs := newPrefabs(t, w, 1)

	var order []string
	first := func(_ context.Context, s Store, es []ecs.Entity, levels []*Level) error {
		order = append(order, "first")
		for i, e := range es {
			// Data slots are already written when commands run.
			h, err := ecs.Get[Health](w, e)
			require.NoError(t, err)
			assert.Equal(t, int32(levels[i].Value), h.Value)
		}
		return nil
	}
	second := func(_ context.Context, s Store, es []ecs.Entity, owners []*Owner) error {
		order = append(order, "second")
		return s.Destroy(es[:1])
	}

	buf, err := NewInstantiateBuffer3(w.Registry(), Command("first", first), Data[Health](), Command("second", second))
	require.NoError(t, err)
	for i := range 3 {
		require.NoError(t, buf.Add(prefabs[0], Level{Value: uint8(i)}, Health{Value: int32(i)}, Owner{}))
	}
	require.NoError(t, buf.Playback(ctx, w))

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1+2, w.Len())
}

func TestInstantiate_CommandError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := ecs.NewWorld(ecs.NewRegistry())
	prefabs := newPrefabs(t, w, 1)

	boom := ErrNotATag // any sentinel works
	fail := func(context.Context, Store, []ecs.Entity, []*Owner) error { return boom }
	buf, err := NewInstantiateBuffer1(w.Registry(), Command("fail", fail))
	require.NoError(t, err)
	require.NoError(t, buf.Add(prefabs[0], Owner{}))

	err = buf.Playback(ctx, w)
	require.ErrorIs(t, err, boom)
	// The clones exist, so the buffer is consumed.
	assert.Equal(t, StatePlayedBack, buf.State())
	assert.Equal(t, 2, w.Len())
}

func TestInstantiate_ZeroSlotsWithTags(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	w := ecs.NewWorld(ecs.NewRegistry())
	prefabs := newPrefabs(t, w, 2)

	buf, err := NewInstantiateBuffer(w.Registry(), WithShards(2))
	require.NoError(t, err)
	require.NoError(t, AddTag[Spawned](buf))
	writer := buf.AsParallelWriter()
	require.NoError(t, writer.Add(1, prefabs[1]))
	require.NoError(t, writer.AddWithKey(0, 0, prefabs[0]))
	require.NoError(t, buf.Add(prefabs[0]))
	require.Equal(t, 3, buf.Count())
	require.NoError(t, buf.Playback(ctx, w))

	snap, err := w.Snapshot()
	require.NoError(t, err)
	spawned := 0
	for _, es := range snap.Entities {
		if _, ok := es.Components["Spawned"]; ok {
			spawned++
			assert.Contains(t, es.Components, "Position")
		}
	}
	assert.Equal(t, 3, spawned)
	assert.False(t, ecs.Has[Spawned](w, prefabs[0]))
}
