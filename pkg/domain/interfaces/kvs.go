package interfaces

import (
	"context"
	"time"
)

// KeyValueStore is the boundary to an expiring key-value service. A missing
// key is not an error: Get and GetDel return (nil, nil) so callers decide how
// absence maps into their own taxonomy.
type KeyValueStore interface {
	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value for key, or (nil, nil) if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// GetDel atomically returns and removes the value for key. With two
	// racing callers exactly one receives the value; the other observes
	// (nil, nil).
	GetDel(ctx context.Context, key string) ([]byte, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
