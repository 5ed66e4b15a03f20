package driven

import "context"

// KVStore provides durable key-value storage for cross-session
// caching. The core's own caches are in-memory and session-scoped;
// the KV store is an optional collaborator used as write-through
// persistence for embedding vectors keyed by content hash and model.
type KVStore interface {
	// Get retrieves the value for a key.
	// Returns domain.ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under a key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
