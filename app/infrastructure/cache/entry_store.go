package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// ErrNotFound is returned by Get when a key has no stored entry.
var ErrNotFound = errors.New("cache: entry not found")

// EntryStore is the persistence tier beneath the in-memory ResultCache. The
// in-memory cache is authoritative while the process runs; a store gives warm
// starts and lets several processes share refreshed data.
type EntryStore interface {
	// Set stores a serialized entry under key with an expiration time
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a serialized entry, ErrNotFound when absent or expired
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a single key
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob-style pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the store connection
	Close() error

	// HealthCheck verifies store connectivity
	HealthCheck(ctx context.Context) error
}

// RefreshLocker is implemented by stores that can arbitrate a cross-process
// refresh, so only one client of a shared tier re-fetches a hot key.
type RefreshLocker interface {
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}
