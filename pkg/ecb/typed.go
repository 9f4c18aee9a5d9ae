package ecb

import (
	"math"
	"unsafe"

	"github.com/argus-labs/ecb/pkg/ecs"
	"github.com/rotisserie/eris"
)

// put stores v at the given word of a record.
func put[T any](rec []uint64, word int, v T) {
	*(*T)(unsafe.Pointer(&rec[word])) = v
}

// InstantiateBuffer records commands that clone a prefab without writing any payload. Tags and the
// prefab's own components still apply.
type InstantiateBuffer struct {
	*buffer
}

// NewInstantiateBuffer creates an instantiate buffer without payload slots.
func NewInstantiateBuffer(reg *ecs.Registry, opts ...Option) (*InstantiateBuffer, error) {
	b, err := newBuffer(variantInstantiate, reg, nil, opts)
	if err != nil {
		return nil, err
	}
	return &InstantiateBuffer{buffer: b}, nil
}

// Add records an instantiation with the default sort key.
func (b *InstantiateBuffer) Add(prefab ecs.Entity) error {
	_, err := b.reserve(0, prefab, math.MaxInt32)
	return err
}

// AddWithKey records an instantiation. Lower keys are instantiated first.
func (b *InstantiateBuffer) AddWithKey(sortKey int32, prefab ecs.Entity) error {
	_, err := b.reserve(0, prefab, sortKey)
	return err
}

// AsParallelWriter returns a writer that records from several goroutines at once.
func (b *InstantiateBuffer) AsParallelWriter() *Writer {
	return &Writer{buffer: b.buffer}
}

// Writer is the parallel writer of an InstantiateBuffer.
type Writer struct {
	buffer *buffer
}

// Shards returns the number of worker indices the writer accepts.
func (w *Writer) Shards() int {
	return w.buffer.Shards()
}

// Add records an instantiation with the default sort key into the worker's shard.
func (w *Writer) Add(worker int, prefab ecs.Entity) error {
	_, err := w.buffer.reserve(worker, prefab, math.MaxInt32)
	return err
}

// AddWithKey records an instantiation into the worker's shard.
func (w *Writer) AddWithKey(worker int, sortKey int32, prefab ecs.Entity) error {
	_, err := w.buffer.reserve(worker, prefab, sortKey)
	return err
}

// TagSetter is implemented by every buffer.
type TagSetter interface {
	AddTag(id ecs.ComponentID) error
	Registry() *ecs.Registry
}

// AddTag registers tag type T if needed and adds it to buf.
func AddTag[T any](buf TagSetter) error {
	id, err := ecs.Register[T](buf.Registry())
	if err != nil {
		return eris.Wrap(err, "failed to register tag")
	}
	return buf.AddTag(id)
}
