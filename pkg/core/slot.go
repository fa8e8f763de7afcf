package core

import "context"

// Slot is one named durable location holding the serialized note collection.
// Adhering to this interface keeps the Store independent of the storage mechanism
// (a file, a SQLite row, process memory).
type Slot interface {
	// Initialize ensures the underlying storage is ready (create directories, schema migration).
	Initialize(ctx context.Context) error

	// Read returns the last written payload, or ErrSlotEmpty if nothing was written.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the whole payload. Last writer wins.
	Write(ctx context.Context, data []byte) error
}

// WatchableSlot is implemented by slots that can report changes made by other processes.
type WatchableSlot interface {
	Slot

	// Watch signals on the returned channel whenever the slot changed externally.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
