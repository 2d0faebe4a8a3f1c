package cache

import (
	"context"
	"time"
)

var _ EntryStore = (*NoOpEntryStore)(nil)

// NoOpEntryStore disables persistence for graceful degradation. The in-memory
// ResultCache still works; nothing survives a restart.
type NoOpEntryStore struct{}

func (n *NoOpEntryStore) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}

func (n *NoOpEntryStore) Get(ctx context.Context, key string) (string, error) {
	return "", ErrNotFound
}

func (n *NoOpEntryStore) Delete(ctx context.Context, key string) error {
	return nil
}

func (n *NoOpEntryStore) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (n *NoOpEntryStore) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (n *NoOpEntryStore) Close() error {
	return nil
}

func (n *NoOpEntryStore) HealthCheck(ctx context.Context) error {
	return nil
}
