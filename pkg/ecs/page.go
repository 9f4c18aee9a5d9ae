package ecs

import (
	"unsafe"

	"github.com/argus-labs/ecb/pkg/assert"
)

// PageCapacity is the number of entities a page holds.
const PageCapacity = 1024

// PageID identifies a page: the archetype index in the high 32 bits and the page index within the
// archetype in the low 32 bits.
type PageID uint64

func makePageID(arch, index int) PageID {
	return PageID(uint64(arch)<<32 | uint64(uint32(index))) //nolint:gosec // indices are small
}

// Archetype returns the index of the archetype that owns the page.
func (p PageID) Archetype() int {
	return int(p >> 32) //nolint:gosec // it's ok
}

// Index returns the page index within its archetype.
func (p PageID) Index() int {
	return int(uint32(p)) //nolint:gosec // it's ok
}

// Location is where an entity's component data lives.
type Location struct {
	Page PageID
	Row  int32
}

// page is a fixed-capacity block of rows for one archetype. Each data column holds PageCapacity
// elements of one component laid out back to back; tags have no column.
type page struct {
	id       PageID
	index    int
	entities []Entity // Entity of each occupied row, len is the row count
	columns  [][]byte // Aligned with archetype.comps, nil for tags
}

func newPage(arch *archetype, index int) *page {
	p := &page{
		id:       makePageID(arch.id, index),
		index:    index,
		entities: make([]Entity, 0, PageCapacity),
		columns:  make([][]byte, len(arch.comps)),
	}
	for i, c := range arch.comps {
		if c.IsTag() {
			continue
		}
		p.columns[i] = alignedBytes(int(c.Size) * PageCapacity) //nolint:gosec // it's ok
	}
	return p
}

func (p *page) len() int {
	return len(p.entities)
}

func (p *page) full() bool {
	return len(p.entities) == PageCapacity
}

// push appends an entity and zeroes its row.
func (p *page) push(e Entity, comps []ComponentInfo) int {
	assert.That(!p.full(), "push into a full page")
	row := len(p.entities)
	p.entities = append(p.entities, e)
	for i, col := range p.columns {
		if col != nil {
			clear(cell(col, comps[i].Size, row))
		}
	}
	return row
}

// swapRemove removes a row by moving the last row into it. Returns the entity that now occupies
// row, if any.
func (p *page) swapRemove(row int, comps []ComponentInfo) (Entity, bool) {
	last := len(p.entities) - 1
	assert.That(row <= last, "row %d out of range", row)

	if row != last {
		p.entities[row] = p.entities[last]
		for i, col := range p.columns {
			if col != nil {
				size := comps[i].Size
				copy(cell(col, size, row), cell(col, size, last))
			}
		}
	}
	p.entities = p.entities[:last]

	if row == last {
		return Null, false
	}
	return p.entities[row], true
}

// cell returns the bytes of one element of a column.
func cell(col []byte, size uintptr, row int) []byte {
	start := int(size) * row //nolint:gosec // it's ok
	return col[start : start+int(size)]
}

// alignedBytes returns a zeroed byte slice whose first element is 8-byte aligned, so any plain data
// component can be viewed in place.
func alignedBytes(n int) []byte {
	if n == 0 {
		return nil
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}
