package ecb

import "github.com/argus-labs/ecb/pkg/ecs"

// Store is the entity store a buffer plays back into. *ecs.World implements it.
//
// Playback calls it from a single goroutine only. Spans returned by PageWriteSpan may then be
// written from several goroutines, each touching different pages.
type Store interface {
	// Exists reports whether e is a live entity.
	Exists(e ecs.Entity) bool
	// Create creates count entities without components.
	Create(count int) ([]ecs.Entity, error)
	// AddComponents adds every component of set to every entity in es, keeping existing values.
	AddComponents(es []ecs.Entity, set ecs.ComponentSet) error
	// Instantiate clones a prefab.
	Instantiate(prefab ecs.Entity) (ecs.Entity, error)
	// InstantiateBatch creates count clones of primary.
	InstantiateBatch(primary ecs.Entity, count int) ([]ecs.Entity, error)
	// ResolveLocation returns where the data of e lives.
	ResolveLocation(e ecs.Entity) (ecs.Location, error)
	// PageWriteSpan returns the raw column of component c in a page.
	PageWriteSpan(page ecs.PageID, c ecs.ComponentID) ([]byte, error)
	// Destroy destroys entities.
	Destroy(es []ecs.Entity) error
}

var _ Store = (*ecs.World)(nil)
