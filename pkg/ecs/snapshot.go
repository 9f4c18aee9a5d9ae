package ecs

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Snapshot is a point-in-time dump of every live entity, ordered by entity index. Two worlds that
// went through the same mutations produce byte-identical snapshots.
type Snapshot struct {
	Entities []EntitySnapshot `json:"entities"`
}

// EntitySnapshot holds one entity and its components keyed by component name.
type EntitySnapshot struct {
	Entity     Entity                     `json:"entity"`
	Components map[string]json.RawMessage `json:"components"`
}

// Snapshot captures the current state of the world.
func (w *World) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{Entities: make([]EntitySnapshot, 0, w.entities.live)}

	for index := range w.entities.metas {
		meta := &w.entities.metas[index]
		if !meta.alive {
			continue
		}
		comps := make(map[string]json.RawMessage, len(meta.arch.comps))
		for i, c := range meta.arch.comps {
			var value reflect.Value
			if c.IsTag() {
				value = reflect.Zero(c.Type)
			} else {
				b := cell(meta.page.columns[i], c.Size, meta.row)
				value = reflect.NewAt(c.Type, unsafe.Pointer(&b[0])).Elem()
			}
			raw, err := json.Marshal(value.Interface())
			if err != nil {
				return nil, eris.Wrapf(err, "failed to marshal component %s", c.Name)
			}
			comps[c.Name] = raw
		}
		snap.Entities = append(snap.Entities, EntitySnapshot{
			Entity:     Entity{Index: uint32(index), Generation: meta.generation}, //nolint:gosec // bounded
			Components: comps,
		})
	}
	return snap, nil
}

// Marshal encodes the snapshot as JSON. Component keys are sorted.
func (s *Snapshot) Marshal() ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, eris.Wrap(err, "failed to marshal snapshot")
	}
	return b, nil
}

// Entity returns the snapshot of e, if it was alive.
func (s *Snapshot) Entity(e Entity) (EntitySnapshot, bool) {
	i, found := slices.BinarySearchFunc(s.Entities, e.Index, func(es EntitySnapshot, index uint32) int {
		return int(es.Entity.Index) - int(index)
	})
	if !found || s.Entities[i].Entity != e {
		return EntitySnapshot{}, false
	}
	return s.Entities[i], true
}
