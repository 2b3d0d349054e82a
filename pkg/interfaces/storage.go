package interfaces

import "context"

// EditorStateKey names the single durable slot holding the serialized editor snapshot.
const EditorStateKey = "editor-state"

// SlotStore persists opaque values under named slots. Each Put fully
// replaces the previous value; there is no versioning or append log.
type SlotStore interface {
	// Get returns the stored value and true, or nil and false when the slot is empty.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put overwrites the slot with value.
	Put(ctx context.Context, key string, value []byte) error
}

// ClosableSlotStore is implemented by stores holding external resources.
type ClosableSlotStore interface {
	SlotStore
	Close() error
}
