package providers

import "context"

// CacheProvider abstracts the byte cache backing HTTP response and AI
// analysis caching.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value. A non-positive expiration means no TTL.
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
