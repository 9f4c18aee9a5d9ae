package ecs

import (
	"encoding/binary"

	"github.com/kelindar/bitmap"
)

// ComponentSet is a set of component IDs.
type ComponentSet struct {
	bits bitmap.Bitmap
}

// NewComponentSet creates a set holding the given IDs.
func NewComponentSet(ids ...ComponentID) ComponentSet {
	var s ComponentSet
	for _, id := range ids {
		s.bits.Set(id)
	}
	return s
}

// Add adds id to the set.
func (s *ComponentSet) Add(id ComponentID) {
	s.bits.Set(id)
}

// Contains reports whether id is in the set.
func (s ComponentSet) Contains(id ComponentID) bool {
	return s.bits.Contains(id)
}

// Count returns the number of IDs in the set.
func (s ComponentSet) Count() int {
	return s.bits.Count()
}

// Empty reports whether the set has no IDs.
func (s ComponentSet) Empty() bool {
	return s.bits.Count() == 0
}

// Union returns a new set holding the IDs of both sets.
func (s ComponentSet) Union(other ComponentSet) ComponentSet {
	out := s.Clone()
	// Or reads other's first word, so an empty bitmap can't be passed to it.
	if len(other.bits) > 0 {
		out.bits.Or(other.bits)
	}
	return out
}

// Clone returns a copy of the set that shares no memory with s.
func (s ComponentSet) Clone() ComponentSet {
	return ComponentSet{bits: s.bits.Clone(nil)}
}

// ContainsAll reports whether every ID of other is in s.
func (s ComponentSet) ContainsAll(other ComponentSet) bool {
	all := true
	other.bits.Range(func(id uint32) {
		if all && !s.bits.Contains(id) {
			all = false
		}
	})
	return all
}

// IDs returns the IDs in ascending order.
func (s ComponentSet) IDs() []ComponentID {
	ids := make([]ComponentID, 0, s.bits.Count())
	s.bits.Range(func(id uint32) {
		ids = append(ids, id)
	})
	return ids
}

// Equal reports whether both sets hold the same IDs.
func (s ComponentSet) Equal(other ComponentSet) bool {
	return s.Count() == other.Count() && s.ContainsAll(other)
}

// key returns a map key that is equal for equal sets regardless of the bitmap's capacity.
func (s ComponentSet) key() string {
	buf := make([]byte, 0, 4*s.bits.Count())
	s.bits.Range(func(id uint32) {
		buf = binary.LittleEndian.AppendUint32(buf, id)
	})
	return string(buf)
}
