package ecs

import (
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// World is a paged archetype store. Entities with the same component set share an archetype, and
// each archetype keeps its component data in fixed-capacity pages, one byte column per data
// component.
//
// A World is not safe for concurrent mutation. Byte spans returned by PageWriteSpan may be written
// from several goroutines as long as they touch different pages and no structural change runs at
// the same time.
type World struct {
	reg        *Registry
	entities   entityManager
	archetypes []*archetype          // Index is the archetype ID
	bySet      map[string]*archetype // ComponentSet.key() -> archetype
	logger     zerolog.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the world's logger.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates an empty world that resolves component IDs through reg.
func NewWorld(reg *Registry, opts ...WorldOption) *World {
	w := &World{
		reg:        reg,
		entities:   newEntityManager(),
		archetypes: make([]*archetype, 0),
		bySet:      make(map[string]*archetype),
		logger:     log.Logger.With().Str("component", "ecs").Logger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Registry returns the component registry of the world.
func (w *World) Registry() *Registry {
	return w.reg
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.live
}

// ArchetypeCount returns the number of archetypes created so far.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes)
}

// Exists reports whether e refers to a live entity.
func (w *World) Exists(e Entity) bool {
	_, ok := w.entities.get(e)
	return ok
}

// Create creates count entities without components.
func (w *World) Create(count int) ([]Entity, error) {
	arch, err := w.findOrCreateArchetype(ComponentSet{})
	if err != nil {
		return nil, err
	}
	return w.spawn(arch, count)
}

// Spawn creates one entity with the given components, zero-initialized.
func (w *World) Spawn(set ComponentSet) (Entity, error) {
	arch, err := w.findOrCreateArchetype(set)
	if err != nil {
		return Null, err
	}
	es, err := w.spawn(arch, 1)
	if err != nil {
		return Null, err
	}
	return es[0], nil
}

func (w *World) spawn(arch *archetype, count int) ([]Entity, error) {
	es := make([]Entity, count)
	for i := range es {
		e, err := w.entities.new()
		if err != nil {
			return nil, eris.Wrap(err, "failed to create entity")
		}
		p, row := arch.insert(e)
		meta := &w.entities.metas[e.Index]
		meta.arch, meta.page, meta.row = arch, p, row
		es[i] = e
	}
	return es, nil
}

// AddComponents adds set to every entity in es. Components an entity already has keep their
// value; new ones start zeroed. Handles may repeat. Either every entity is updated or, if one of
// them is missing, none is.
func (w *World) AddComponents(es []Entity, set ComponentSet) error {
	for _, e := range es {
		if !w.Exists(e) {
			return eris.Wrapf(ErrEntityNotFound, "entity %v", e)
		}
	}
	if set.Empty() {
		return nil
	}
	// Validate the IDs once before anything moves.
	if _, err := w.componentInfos(set); err != nil {
		return err
	}

	// Most batches move many entities between few archetype pairs.
	targets := make(map[*archetype]*archetype)
	for _, e := range es {
		meta, _ := w.entities.get(e)
		from := meta.arch
		to, cached := targets[from]
		if !cached {
			var err error
			to, err = w.findOrCreateArchetype(from.set.Union(set))
			if err != nil {
				return err
			}
			targets[from] = to
		}
		if to != from {
			w.move(e, meta, to)
		}
	}
	return nil
}

// Instantiate creates a copy of prefab with the same components and values.
func (w *World) Instantiate(prefab Entity) (Entity, error) {
	es, err := w.instantiate(prefab, 1)
	if err != nil {
		return Null, err
	}
	return es[0], nil
}

// InstantiateBatch creates count copies of primary.
func (w *World) InstantiateBatch(primary Entity, count int) ([]Entity, error) {
	return w.instantiate(primary, count)
}

func (w *World) instantiate(src Entity, count int) ([]Entity, error) {
	meta, ok := w.entities.get(src)
	if !ok {
		return nil, eris.Wrapf(ErrEntityNotFound, "prefab %v", src)
	}
	arch := meta.arch
	es, err := w.spawn(arch, count)
	if err != nil {
		return nil, err
	}

	// Re-read the source location, spawning can't move it but the meta slice may have grown.
	srcMeta := &w.entities.metas[src.Index]
	for _, e := range es {
		dst := &w.entities.metas[e.Index]
		for i, c := range arch.comps {
			if c.IsTag() {
				continue
			}
			copy(cell(dst.page.columns[i], c.Size, dst.row), cell(srcMeta.page.columns[i], c.Size, srcMeta.row))
		}
	}
	return es, nil
}

// ResolveLocation returns the page and row holding e.
func (w *World) ResolveLocation(e Entity) (Location, error) {
	meta, ok := w.entities.get(e)
	if !ok {
		return Location{}, eris.Wrapf(ErrEntityNotFound, "entity %v", e)
	}
	return Location{Page: meta.page.id, Row: int32(meta.row)}, nil //nolint:gosec // row < PageCapacity
}

// PageWriteSpan returns the column of a component in a page. The span holds PageCapacity elements;
// the element of row r starts at r * size.
func (w *World) PageWriteSpan(id PageID, c ComponentID) ([]byte, error) {
	archIndex, pageIndex := id.Archetype(), id.Index()
	if archIndex >= len(w.archetypes) || pageIndex >= len(w.archetypes[archIndex].pages) {
		return nil, eris.Wrapf(ErrPageNotFound, "page %d", id)
	}
	arch := w.archetypes[archIndex]
	col := arch.column(c)
	if col < 0 {
		return nil, eris.Wrapf(ErrComponentNotFound, "component %d in page %d", c, id)
	}
	return arch.pages[pageIndex].columns[col], nil
}

// Destroy removes entities. Either all of them are removed or, if one is missing, none is.
// Repeated handles are removed once.
func (w *World) Destroy(es []Entity) error {
	for _, e := range es {
		if !w.Exists(e) {
			return eris.Wrapf(ErrEntityNotFound, "entity %v", e)
		}
	}
	for _, e := range es {
		meta, ok := w.entities.get(e)
		if !ok {
			continue
		}
		w.detach(meta)
		w.entities.release(e)
	}
	return nil
}

// Components returns the component set of an entity.
func (w *World) Components(e Entity) (ComponentSet, error) {
	meta, ok := w.entities.get(e)
	if !ok {
		return ComponentSet{}, eris.Wrapf(ErrEntityNotFound, "entity %v", e)
	}
	return meta.arch.set, nil
}

// move relocates an entity to another archetype, carrying over the components both share.
func (w *World) move(e Entity, meta *entityMeta, to *archetype) {
	from, fromPage, fromRow := meta.arch, meta.page, meta.row

	toPage, toRow := to.insert(e)
	for i, c := range to.comps {
		if c.IsTag() {
			continue
		}
		if src := from.column(c.ID); src >= 0 {
			copy(cell(toPage.columns[i], c.Size, toRow), cell(fromPage.columns[src], c.Size, fromRow))
		}
	}

	w.detach(meta)
	meta.arch, meta.page, meta.row = to, toPage, toRow
}

// detach removes an entity's row from its page and fixes up the entity moved into the hole.
func (w *World) detach(meta *entityMeta) {
	moved, ok := meta.arch.remove(meta.page, meta.row)
	if ok {
		w.entities.metas[moved.Index].row = meta.row
	}
}

// findOrCreateArchetype finds the archetype with exactly the given components or creates it.
func (w *World) findOrCreateArchetype(set ComponentSet) (*archetype, error) {
	key := set.key()
	if arch, ok := w.bySet[key]; ok {
		return arch, nil
	}

	comps, err := w.componentInfos(set)
	if err != nil {
		return nil, err
	}
	arch := newArchetype(len(w.archetypes), set, comps)
	w.archetypes = append(w.archetypes, arch)
	w.bySet[key] = arch

	w.logger.Debug().Int("archetype_id", arch.id).Int("components", len(comps)).Msg("archetype created")
	return arch, nil
}

func (w *World) componentInfos(set ComponentSet) ([]ComponentInfo, error) {
	ids := set.IDs()
	comps := make([]ComponentInfo, 0, len(ids))
	for _, id := range ids {
		info, err := w.reg.Info(id)
		if err != nil {
			return nil, err
		}
		comps = append(comps, info)
	}
	slices.SortFunc(comps, func(a, b ComponentInfo) int { return int(a.ID) - int(b.ID) })
	return comps, nil
}
