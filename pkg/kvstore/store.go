package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned when a key has no stored value.
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrFailedToConnect is returned when a backing store cannot be reached
	// after all retry attempts.
	ErrFailedToConnect = errors.New("kvstore: failed to connect to backing store")
)

// Store is the key-value persistence contract used for settings and
// notification records. Values are opaque JSON blobs; callers own the
// serialization. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
