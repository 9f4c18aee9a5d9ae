package ecb

import (
	"context"
	"reflect"
	"slices"
	"unsafe"

	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/rotisserie/eris"
)

const (
	// MaxPayloadSlots is the maximum number of typed payloads per record.
	MaxPayloadSlots = 5
	// MaxCommands is the maximum number of command slots of an instantiate buffer.
	MaxCommands = 4
	// MaxTags is the maximum number of tag components a buffer adds on playback.
	MaxTags = 15
)

const wordSize = 8

// CommandFunc post-processes freshly instantiated entities. It is called once per playback with
// every instantiated entity and the matching payloads, in playback order. The payload pointers are
// only valid during the call.
type CommandFunc[T any] func(ctx context.Context, store Store, entities []ecs.Entity, payloads []*T) error

type slotKind uint8

const (
	slotData slotKind = iota
	slotCommand
)

// Slot describes one typed payload of an instantiate buffer record: either component data written
// into the instantiated entity, or the payload of a command.
type Slot[T any] struct {
	spec slotSpec
}

// Data returns a slot whose payload is written into component T of the instantiated entity.
func Data[T any]() Slot[T] {
	return Slot[T]{spec: slotSpec{kind: slotData, typ: reflect.TypeFor[T]()}}
}

// Command returns a slot whose payloads are handed to fn after the instantiated entities are
// written. The payload is not stored on the entity.
func Command[T any](name string, fn CommandFunc[T]) Slot[T] {
	return Slot[T]{spec: slotSpec{
		kind: slotCommand,
		name: name,
		typ:  reflect.TypeFor[T](),
		run: func(ctx context.Context, store Store, es []ecs.Entity, recs [][]uint64, word int) error {
			payloads := make([]*T, len(recs))
			for i, rec := range recs {
				payloads[i] = (*T)(unsafe.Pointer(&rec[word]))
			}
			return fn(ctx, store, es, payloads)
		},
	}}
}

type commandRunner func(ctx context.Context, store Store, es []ecs.Entity, recs [][]uint64, word int) error

type slotSpec struct {
	kind slotKind
	name string
	typ  reflect.Type
	run  commandRunner
}

// slot is a resolved slotSpec with its place in the record.
type slot struct {
	slotSpec
	component ecs.ComponentID // Data slots only
	size      int             // Bytes
	word      int             // Offset into the record, in words
}

// schema is the fixed record layout of a buffer plus the tags added on playback.
type schema struct {
	slots    []slot
	data     []int // Indices of data slots
	commands []int // Indices of command slots, in registration order
	words    int   // Record stride in words
	set      ecs.ComponentSet
	tags     [MaxTags]ecs.ComponentID
	ntags    int
}

func newSchema(reg *ecs.Registry, specs []slotSpec) (schema, error) {
	s := schema{slots: make([]slot, 0, len(specs))}
	if len(specs) > MaxPayloadSlots {
		return s, eris.Wrapf(ErrSchemaOverflow, "%d payload slots, at most %d", len(specs), MaxPayloadSlots)
	}

	for _, spec := range specs {
		size := int(spec.typ.Size()) //nolint:gosec // it's ok
		if size == 0 {
			return s, eris.Wrapf(ErrZeroSizedPayload, "slot type %s", spec.typ)
		}
		sl := slot{slotSpec: spec, size: size, word: s.words}

		switch spec.kind {
		case slotData:
			id, err := reg.RegisterType(spec.typ)
			if err != nil {
				return s, eris.Wrapf(err, "failed to register payload %s", spec.typ)
			}
			if s.set.Contains(id) {
				return s, eris.Wrapf(ErrDuplicateSlot, "component %s", spec.typ)
			}
			sl.component = id
			s.set.Add(id)
			s.data = append(s.data, len(s.slots))
		case slotCommand:
			if !ecs.IsPlainData(spec.typ) {
				return s, eris.Wrapf(ecs.ErrComponentHasPointers, "command payload %s", spec.typ)
			}
			if sl.name == "" {
				sl.name = spec.typ.String()
			}
			for _, i := range s.commands {
				if s.slots[i].name == sl.name {
					return s, eris.Wrapf(ErrDuplicateSlot, "command %s", sl.name)
				}
			}
			if len(s.commands) == MaxCommands {
				return s, eris.Wrapf(ErrSchemaOverflow, "more than %d command slots", MaxCommands)
			}
			s.commands = append(s.commands, len(s.slots))
		}

		s.slots = append(s.slots, sl)
		s.words += (size + wordSize - 1) / wordSize
	}
	return s, nil
}

// stride returns the record stride in words. Records are never empty so a zero-slot buffer still
// keeps both logs in step.
func (s *schema) stride() int {
	return max(s.words, 1)
}

// setTags replaces the tag set.
func (s *schema) setTags(reg *ecs.Registry, ids []ecs.ComponentID) error {
	if len(ids) > MaxTags {
		return eris.Wrapf(ErrSchemaOverflow, "%d tags, at most %d", len(ids), MaxTags)
	}
	var tags [MaxTags]ecs.ComponentID
	n := 0
	for _, id := range ids {
		if err := checkTag(reg, id); err != nil {
			return err
		}
		if slices.Contains(tags[:n], id) {
			continue
		}
		tags[n] = id
		n++
	}
	s.tags, s.ntags = tags, n
	return nil
}

// addTag adds one tag. Adding a tag twice is a no-op.
func (s *schema) addTag(reg *ecs.Registry, id ecs.ComponentID) error {
	if err := checkTag(reg, id); err != nil {
		return err
	}
	if slices.Contains(s.tags[:s.ntags], id) {
		return nil
	}
	if s.ntags == MaxTags {
		return eris.Wrapf(ErrSchemaOverflow, "more than %d tags", MaxTags)
	}
	s.tags[s.ntags] = id
	s.ntags++
	return nil
}

// componentSet returns every component playback adds: data slots and tags.
func (s *schema) componentSet() ecs.ComponentSet {
	set := s.set.Clone()
	for _, id := range s.tags[:s.ntags] {
		set.Add(id)
	}
	return set
}

func checkTag(reg *ecs.Registry, id ecs.ComponentID) error {
	info, err := reg.Info(id)
	if err != nil {
		return err
	}
	if !info.IsTag() {
		return eris.Wrapf(ErrNotATag, "component %s", info.Name)
	}
	return nil
}
