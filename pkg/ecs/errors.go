package ecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned when attempting to operate on a non-existent entity
	// or when an entity handle is stale.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrComponentNotFound is returned when an entity or page doesn't hold the requested component.
	ErrComponentNotFound = eris.New("component not found")

	// ErrComponentNotRegistered is returned when a component type is used before registration.
	ErrComponentNotRegistered = eris.New("component is not registered")

	// ErrComponentHasPointers is returned when registering a type whose bytes can't be copied
	// verbatim, i.e. anything holding pointers, strings, slices, maps, interfaces or channels.
	ErrComponentHasPointers = eris.New("component must be plain data")

	// ErrPageNotFound is returned for page handles that don't name a live page.
	ErrPageNotFound = eris.New("page does not exist")
)
