package ecs

// archetypeID is the index of an archetype in the world's archetype list.
type archetypeID = int

// archetype holds the pages of every entity with exactly the same component set. Pages are never
// freed; an emptied page is reused by later inserts.
type archetype struct {
	id      archetypeID
	set     ComponentSet
	comps   []ComponentInfo     // Sorted by component ID, tags included
	columns map[ComponentID]int // Component ID -> index in comps
	pages   []*page
	open    int // Lowest page index that may have a free row
}

func newArchetype(aid archetypeID, set ComponentSet, comps []ComponentInfo) *archetype {
	columns := make(map[ComponentID]int, len(comps))
	for i, c := range comps {
		columns[c.ID] = i
	}
	return &archetype{
		id:      aid,
		set:     set,
		comps:   comps,
		columns: columns,
		pages:   make([]*page, 0),
	}
}

// column returns the index of a component in comps, or -1.
func (a *archetype) column(id ComponentID) int {
	if i, ok := a.columns[id]; ok {
		return i
	}
	return -1
}

// insert places an entity in the first page with room and returns its page and row.
func (a *archetype) insert(e Entity) (*page, int) {
	for a.open < len(a.pages) && a.pages[a.open].full() {
		a.open++
	}
	if a.open == len(a.pages) {
		a.pages = append(a.pages, newPage(a, len(a.pages)))
	}
	p := a.pages[a.open]
	row := p.push(e, a.comps)
	return p, row
}

// remove deletes a row. Returns the entity moved into the row, if any.
func (a *archetype) remove(p *page, row int) (Entity, bool) {
	moved, ok := p.swapRemove(row, a.comps)
	if p.index < a.open {
		a.open = p.index
	}
	return moved, ok
}
