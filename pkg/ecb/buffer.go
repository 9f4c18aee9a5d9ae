package ecb

import (
	"github.com/argus-labs/ecb/pkg/assert"
	"github.com/argus-labs/ecb/pkg/blockalloc"
	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/argus-labs/ecb/pkg/jobs"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// State is the lifecycle state of a buffer.
type State uint8

const (
	// StateRecording accepts Add, SetTags and AddTag.
	StateRecording State = iota
	// StatePlayedBack is reached once playback starts changing the store. Only Count, State and
	// Dispose are allowed afterwards.
	StatePlayedBack
	// StateDisposed means the buffer's memory was released.
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StatePlayedBack:
		return "played_back"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

type variant uint8

const (
	variantApply variant = iota
	variantInstantiate
)

func (v variant) String() string {
	if v == variantInstantiate {
		return "instantiate"
	}
	return "apply"
}

// target is one entry of the target log: the entity a record applies to (or the prefab it
// instantiates) and its sort key.
type target struct {
	entity  ecs.Entity
	sortKey int32
}

func (t target) SortKey() int32 {
	return t.sortKey
}

// buffer is the untyped core shared by every typed buffer. It keeps two logs in step: targets and
// payloads. Record i of one log belongs to record i of the other, because both are appended to the
// same shard by the same call.
type buffer struct {
	id       uuid.UUID
	variant  variant
	reg      *ecs.Registry
	schema   schema
	opts     options
	logger   zerolog.Logger
	targets  *blockalloc.Log[target]
	payloads *blockalloc.Log[uint64]
	state    State
}

func newBuffer(v variant, reg *ecs.Registry, specs []slotSpec, opts []Option) (*buffer, error) {
	if reg == nil {
		return nil, eris.New("component registry must not be nil")
	}
	o := newDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s, err := newSchema(reg, specs)
	if err != nil {
		return nil, eris.Wrap(err, "invalid command buffer schema")
	}

	shards := o.shardCount()
	id := uuid.New()
	return &buffer{
		id:       id,
		variant:  v,
		reg:      reg,
		schema:   s,
		opts:     o,
		logger:   o.logger.With().Str("buffer_id", id.String()).Str("variant", v.String()).Logger(),
		targets:  blockalloc.New[target](shards, 1, o.blockRecords),
		payloads: blockalloc.New[uint64](shards, s.stride(), o.blockRecords),
		state:    StateRecording,
	}, nil
}

// ID returns the buffer's unique ID, also found in its log lines.
func (b *buffer) ID() uuid.UUID {
	return b.id
}

// State returns the lifecycle state.
func (b *buffer) State() State {
	return b.state
}

// Registry returns the component registry the buffer resolves types with.
func (b *buffer) Registry() *ecs.Registry {
	return b.reg
}

// Count returns the number of recorded commands. It may be called while other goroutines read the
// buffer, but not while a parallel writer is still appending.
func (b *buffer) Count() int {
	if b.payloads.Disposed() {
		return 0
	}
	assert.That(b.targets.Len() == b.payloads.Len(), "target and payload logs out of step")
	return b.targets.Len()
}

// Shards returns the number of worker indices the parallel writer accepts.
func (b *buffer) Shards() int {
	return b.targets.Shards()
}

// SetTags replaces the tag components added to every target on playback.
func (b *buffer) SetTags(ids ...ecs.ComponentID) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	return b.schema.setTags(b.reg, ids)
}

// AddTag adds a tag component to every target on playback.
func (b *buffer) AddTag(id ecs.ComponentID) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	return b.schema.addTag(b.reg, id)
}

// Tags returns the tag components added on playback.
func (b *buffer) Tags() []ecs.ComponentID {
	return append([]ecs.ComponentID(nil), b.schema.tags[:b.schema.ntags]...)
}

// Dispose releases the buffer's memory. Any later call fails with ErrDisposed. Disposing twice is
// a no-op.
func (b *buffer) Dispose() {
	if b.state == StateDisposed {
		return
	}
	b.targets.Dispose()
	b.payloads.Dispose()
	b.state = StateDisposed
	b.logger.Debug().Msg("command buffer disposed")
}

// DisposeAfter disposes the buffer once dep completes, e.g. after the jobs still reading it have
// finished. The returned handle completes when the buffer is disposed.
func (b *buffer) DisposeAfter(dep jobs.Handle) jobs.Handle {
	return jobs.After(dep, b.Dispose)
}

func (b *buffer) checkMutable() error {
	switch b.state {
	case StateRecording:
		return nil
	case StateDisposed:
		return eris.Wrapf(ErrDisposed, "buffer %s", b.id)
	default:
		return eris.Wrapf(ErrUseAfterPlayback, "buffer %s", b.id)
	}
}

// reserve appends one record to the given shard and returns its payload words.
func (b *buffer) reserve(worker int, e ecs.Entity, sortKey int32) ([]uint64, error) {
	if assert.Enabled {
		if err := b.checkMutable(); err != nil {
			return nil, err
		}
		if e.IsNull() {
			return nil, eris.Wrapf(ErrInvalidTarget, "null target recorded in buffer %s", b.id)
		}
	}
	t := b.targets.Append(worker)
	t[0] = target{entity: e, sortKey: sortKey}
	return b.payloads.Append(worker), nil
}

// materialize flattens both logs. recs[i] aliases the payload words of targets[i].
func (b *buffer) materialize() ([]target, [][]uint64) {
	targets := make([]target, 0, b.targets.Len())
	b.targets.Range(func(rec []target) bool {
		targets = append(targets, rec[0])
		return true
	})
	recs := make([][]uint64, 0, len(targets))
	b.payloads.Range(func(rec []uint64) bool {
		recs = append(recs, rec)
		return true
	})
	assert.That(len(targets) == len(recs), "target and payload logs out of step: %d != %d", len(targets), len(recs))
	return targets, recs
}
