package service

import "context"

// KeyValueStore persists independent JSON documents under string keys.
// Writes are synchronous; each key is its own document, so no cross-key
// transactionality is offered or needed.
type KeyValueStore interface {
	// Get returns the raw document and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores the document, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
