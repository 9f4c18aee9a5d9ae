// Package ecb is a deferred command buffer for structural changes to an entity store.
//
// Many goroutines record "write these components to that entity later" commands without locking:
// each one appends to its own shard through a parallel writer. Once every writer is done, a single
// Playback applies the whole batch: commands are ordered by sort key, the component set is added to
// every target in one store call, and payloads are copied page by page into the entities' storage.
//
// Apply buffers (ApplyBuffer1..ApplyBuffer5) write into existing entities and resolve destroyed
// targets by Policy. Instantiate buffers (InstantiateBuffer, InstantiateBuffer1..5) clone prefabs,
// calling the store once per distinct prefab, and can run Command slots over the clones.
//
// Payload types must be plain data; their bytes are stored in the buffer and copied verbatim.
package ecb

//go:generate go run ../../internal/cmd/gentyped -out typed_generated.go
