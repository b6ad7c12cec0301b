// Package storage persists small page-state slots, playing the role of
// the host's local storage: byte values under string keys, surviving
// across sessions. The contact form keeps its draft here.
package storage

import "errors"

// Store persists state slots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a slot value.
	// Returns ErrNotFound if the key doesn't exist.
	Get(key string) ([]byte, error)

	// Set stores a slot value, overwriting any existing value.
	Set(key string, value []byte) error

	// Delete removes a slot.
	// Returns nil if the key doesn't exist.
	Delete(key string) error

	// Keys returns all stored keys, sorted.
	// Returns an empty slice (not an error) when the store is empty.
	Keys() ([]string, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for slot operations.
var (
	// ErrNotFound indicates a slot doesn't exist.
	ErrNotFound = errors.New("slot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("slot store closed")
)
