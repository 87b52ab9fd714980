// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the byte store behind document persistence.
// Implementations are in-memory, Redis or SQLite.
//
// Example usage:
//
//	// Store a serialized document for a day
//	err := cache.Set(ctx, "document:1f0c", data, 24*time.Hour)
//
//	// Retrieve it; a miss is reported as *errors.NotFoundError
//	data, err := cache.Get(ctx, "document:1f0c")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// A missing or expired key returns a NotFoundError.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
