package ecs

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// Entity is a handle to an entity. Index is recycled after destruction; Generation tells a live
// entity apart from older handles that used the same index.
type Entity struct {
	Index      uint32
	Generation uint32
}

// Null is the zero handle. It never refers to a live entity.
var Null = Entity{} //nolint:gochecknoglobals // sentinel

// MaxEntities is the maximum number of entity indices a world can hand out.
const MaxEntities = math.MaxUint32 - 1

// IsNull reports whether e is the null handle.
func (e Entity) IsNull() bool {
	return e.Generation == 0
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Index, e.Generation)
}

// entityMeta is the per-index bookkeeping of the world. page and row are only meaningful while
// alive is set.
type entityMeta struct {
	generation uint32
	alive      bool
	arch       *archetype
	page       *page
	row        int
}

// entityManager hands out entity indices and tracks where each live entity is stored.
type entityManager struct {
	metas []entityMeta
	free  []uint32 // A queue of free indices
	live  int
}

func newEntityManager() entityManager {
	return entityManager{
		metas: make([]entityMeta, 0),
		free:  make([]uint32, 0),
	}
}

// new reserves an index and returns the handle for it. The caller places the entity in a page.
func (em *entityManager) new() (Entity, error) {
	var index uint32
	if len(em.free) > 0 {
		// Pop from the front of the free list (FIFO) so indices are reused as late as possible.
		index = em.free[0]
		em.free = em.free[1:]
	} else {
		if len(em.metas) > MaxEntities {
			return Null, eris.New("max number of entities exceeded")
		}
		index = uint32(len(em.metas)) //nolint:gosec // bounded above
		em.metas = append(em.metas, entityMeta{generation: 0})
	}

	meta := &em.metas[index]
	meta.generation++
	if meta.generation == 0 { // skip the null generation on wrap-around
		meta.generation = 1
	}
	meta.alive = true
	em.live++
	return Entity{Index: index, Generation: meta.generation}, nil
}

// get returns the metadata of a live entity.
func (em *entityManager) get(e Entity) (*entityMeta, bool) {
	if e.IsNull() || int(e.Index) >= len(em.metas) {
		return nil, false
	}
	meta := &em.metas[e.Index]
	if !meta.alive || meta.generation != e.Generation {
		return nil, false
	}
	return meta, true
}

// release marks an entity dead and queues its index for reuse.
func (em *entityManager) release(e Entity) {
	meta := &em.metas[e.Index]
	meta.alive = false
	meta.arch = nil
	meta.page = nil
	meta.row = 0
	em.free = append(em.free, e.Index)
	em.live--
}
