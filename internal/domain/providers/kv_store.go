package providers

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the opaque string-keyed store marketplace records live in
type KeyValueStore interface {
	// Get retrieves a value, or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value; expirationSeconds <= 0 keeps it forever
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)
}
