package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Increment atomically increments a counter key, setting its expiry
	// on first use. Used for submission rate limiting.
	Increment(ctx context.Context, key string, expirationSeconds int) (int64, error)
}
