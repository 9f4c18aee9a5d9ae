// Package ecs is a paged archetype entity store.
//
// Component types are registered in a Registry and must be plain data: their bytes are copied
// verbatim between pages, so nothing the garbage collector traces may live inside them. Each
// archetype stores its entities in pages of PageCapacity rows with one contiguous column per data
// component, which lets bulk writers address a whole page column at once through PageWriteSpan.
package ecs

import (
	"unsafe"

	"github.com/rotisserie/eris"
)

// Get returns the value of component T on e.
func Get[T any](w *World, e Entity) (T, error) {
	var zero T
	ptr, err := lookup[T](w, e)
	if err != nil {
		return zero, err
	}
	if ptr == nil {
		return zero, nil
	}
	return *ptr, nil
}

// Set writes component T on e, adding the component first if e doesn't have it yet.
func Set[T any](w *World, e Entity, value T) error {
	ptr, err := lookup[T](w, e)
	if eris.Is(err, ErrComponentNotFound) {
		id, _ := IDOf[T](w.reg) // lookup already resolved the ID
		if err := w.AddComponents([]Entity{e}, NewComponentSet(id)); err != nil {
			return err
		}
		ptr, err = lookup[T](w, e)
	}
	if err != nil {
		return err
	}
	if ptr != nil {
		*ptr = value
	}
	return nil
}

// Has reports whether e is alive and has component T.
func Has[T any](w *World, e Entity) bool {
	id, err := IDOf[T](w.reg)
	if err != nil {
		return false
	}
	meta, ok := w.entities.get(e)
	return ok && meta.arch.set.Contains(id)
}

// Alive reports whether e refers to a live entity.
func Alive(w *World, e Entity) bool {
	return w.Exists(e)
}

// lookup returns a pointer into the page holding T for e. Tags resolve to a nil pointer.
func lookup[T any](w *World, e Entity) (*T, error) {
	id, err := IDOf[T](w.reg)
	if err != nil {
		return nil, err
	}
	meta, ok := w.entities.get(e)
	if !ok {
		return nil, eris.Wrapf(ErrEntityNotFound, "entity %v", e)
	}
	col := meta.arch.column(id)
	if col < 0 {
		return nil, eris.Wrapf(ErrComponentNotFound, "component %d on entity %v", id, e)
	}
	info := meta.arch.comps[col]
	if info.IsTag() {
		return nil, nil //nolint:nilnil // tags have no storage
	}
	b := cell(meta.page.columns[col], info.Size, meta.row)
	return (*T)(unsafe.Pointer(&b[0])), nil
}
