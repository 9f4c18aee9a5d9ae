package ecs

import (
	"reflect"
	"sync"

	"github.com/argus-labs/ecb/pkg/assert"
	"github.com/rotisserie/eris"
)

// Component is the interface components may implement to give themselves a stable name. Types that
// don't implement it are named after their Go type.
type Component interface { //nolint:iface // We may add more methods in the future.
	Name() string
}

// ComponentID is a unique identifier for a component type within a Registry.
type ComponentID = uint32

// MaxComponents is the maximum number of component types a registry accepts.
const MaxComponents = 1 << 12

// ComponentInfo describes a registered component type.
type ComponentInfo struct {
	ID    ComponentID
	Name  string
	Type  reflect.Type
	Size  uintptr
	Align uintptr
}

// IsTag reports whether the component carries no data.
func (c ComponentInfo) IsTag() bool {
	return c.Size == 0
}

// Registry assigns IDs to component types. Worlds and command buffers that exchange component IDs
// must share a registry. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]ComponentID
	infos  []ComponentInfo // Component ID -> info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]ComponentID),
		infos:  make([]ComponentInfo, 0),
	}
}

// Register registers T and returns its ID. Registering a type twice returns the existing ID.
func Register[T any](r *Registry) (ComponentID, error) {
	return r.RegisterType(reflect.TypeFor[T]())
}

// IDOf returns the ID of a registered type.
func IDOf[T any](r *Registry) (ComponentID, error) {
	return r.IDOfType(reflect.TypeFor[T]())
}

// RegisterType registers a component type given its reflect.Type.
func (r *Registry) RegisterType(t reflect.Type) (ComponentID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// If component already exists, no-op.
	if id, exists := r.byType[t]; exists {
		return id, nil
	}
	if hasPointers(t) {
		return 0, eris.Wrapf(ErrComponentHasPointers, "component %s", t)
	}
	if len(r.infos) >= MaxComponents {
		return 0, eris.Errorf("max number of components (%d) exceeded", MaxComponents)
	}

	id := ComponentID(len(r.infos)) //nolint:gosec // bounded by MaxComponents
	r.byType[t] = id
	r.infos = append(r.infos, ComponentInfo{
		ID:    id,
		Name:  componentName(t),
		Type:  t,
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	})
	assert.That(int(id)+1 == len(r.infos), "component id doesn't match number of components")

	return id, nil
}

// IDOfType returns the ID of a registered type.
func (r *Registry) IDOfType(t reflect.Type) (ComponentID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byType[t]
	if !exists {
		return 0, eris.Wrapf(ErrComponentNotRegistered, "component %s", t)
	}
	return id, nil
}

// Info returns the description of a registered component.
func (r *Registry) Info(id ComponentID) (ComponentInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(id) >= len(r.infos) {
		return ComponentInfo{}, eris.Wrapf(ErrComponentNotRegistered, "component id %d", id)
	}
	return r.infos[id], nil
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.infos)
}

func componentName(t reflect.Type) string {
	if t.Implements(reflect.TypeFor[Component]()) {
		return reflect.Zero(t).Interface().(Component).Name() //nolint:forcetypeassert // checked above
	}
	return t.String()
}

// IsPlainData reports whether values of t can be copied as raw bytes, i.e. t holds nothing the
// garbage collector traces.
func IsPlainData(t reflect.Type) bool {
	return !hasPointers(t)
}

// hasPointers reports whether values of t hold anything the garbage collector must trace.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() { //nolint:exhaustive // everything else holds pointers
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
