// Package repository persists training state through a key-value storage port.
package repository

import "context"

// Storage is a durable key-value store holding one JSON document per key.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
