// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is the host key-value slot the persistence layer writes blobs into.
// This abstraction allows swapping storage backends (SQLite, Redis, etc.)
// without changing the repository layer.
type Store interface {
	// Get returns the bytes stored under key.
	// Returns ErrNotFound if the key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the bytes stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}
