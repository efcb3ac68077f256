package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process KeyValueStore for development and tests. Expiry is
// checked lazily on read against an injectable clock.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ interfaces.KeyValueStore = (*Memory)(nil)

// NewMemory creates an in-memory key-value store
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (x *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)

	x.entries[key] = memoryEntry{
		value:     copied,
		expiresAt: x.now().Add(ttl),
	}
	return nil
}

func (x *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	return x.lookup(key, false), nil
}

func (x *Memory) GetDel(ctx context.Context, key string) ([]byte, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	return x.lookup(key, true), nil
}

// lookup must be called with the mutex held
func (x *Memory) lookup(key string, consume bool) []byte {
	entry, ok := x.entries[key]
	if !ok {
		return nil
	}

	if !x.now().Before(entry.expiresAt) {
		delete(x.entries, key)
		return nil
	}

	if consume {
		delete(x.entries, key)
	}
	return entry.value
}

func (x *Memory) Ping(ctx context.Context) error {
	return nil
}

func (x *Memory) Close() error {
	return nil
}
