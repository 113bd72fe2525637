// Package storage provides abstractions for durable local state.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KV defines the interface for namespaced blob storage.
//
// The session and realtime stores serialize their observable state as JSON
// blobs under fixed keys so that it survives process restarts. The format of
// the stored value is an implementation detail of the writing store, not a
// cross-version contract. This abstraction allows swapping storage backends
// (SQLite, in-memory, etc.) without changing the store layer.
type KV interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any existing value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
