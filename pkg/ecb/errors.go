package ecb

import "github.com/rotisserie/eris"

var (
	// ErrUseAfterPlayback is returned by mutating calls on a buffer that was already played back.
	ErrUseAfterPlayback = eris.New("command buffer already played back")

	// ErrDisposed is returned by any call on a disposed buffer.
	ErrDisposed = eris.New("command buffer is disposed")

	// ErrInvalidTarget is returned when a null handle is recorded, or a prefab no longer exists at
	// playback time.
	ErrInvalidTarget = eris.New("invalid target entity")

	// ErrSchemaOverflow is returned when a buffer schema exceeds one of its fixed limits.
	ErrSchemaOverflow = eris.New("command buffer schema overflow")

	// ErrZeroSizedPayload is returned when a zero-sized type is used as a payload slot. Tags go
	// through SetTags and AddTag instead.
	ErrZeroSizedPayload = eris.New("payload type must not be zero-sized")

	// ErrDuplicateSlot is returned when two payload slots use the same component type, or two
	// command slots share a name.
	ErrDuplicateSlot = eris.New("duplicate payload slot")

	// ErrNotATag is returned when a data component is passed where a tag is expected.
	ErrNotATag = eris.New("component is not a tag")

	// ErrDestroyedTarget is returned under the Throw policy when a recorded target no longer exists.
	ErrDestroyedTarget = eris.New("target entity was destroyed before playback")

	// ErrMissingStore is returned when Playback is called without an entity store.
	ErrMissingStore = eris.New("no entity store bound to playback")
)
