package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"docurio.ai/docurio-client/app/utils/clock"
)

var _ EntryStore = (*MemoryEntryStore)(nil)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryEntryStore is the process-local tier, also the one tests use.
// Expired items are dropped lazily on read.
type MemoryEntryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	clk   clock.Clock
}

func NewMemoryEntryStore() *MemoryEntryStore {
	return NewMemoryEntryStoreWithClock(clock.System())
}

func NewMemoryEntryStoreWithClock(clk clock.Clock) *MemoryEntryStore {
	return &MemoryEntryStore{
		items: map[string]memoryItem{},
		clk:   clk,
	}
}

func (m *MemoryEntryStore) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	item := memoryItem{value: value}
	if expiration > 0 {
		item.expiresAt = m.clk.Now().Add(expiration)
	}
	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryEntryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	if !item.expiresAt.IsZero() && m.clk.Now().After(item.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", ErrNotFound
	}
	return item.value, nil
}

func (m *MemoryEntryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// DeletePattern supports trailing-star patterns, which is the only shape the
// cache issues.
func (m *MemoryEntryStore) DeletePattern(ctx context.Context, pattern string) error {
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	m.mu.Lock()
	defer m.mu.Unlock()
	if !wildcard {
		delete(m.items, pattern)
		return nil
	}
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

func (m *MemoryEntryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryEntryStore) Close() error {
	m.mu.Lock()
	m.items = map[string]memoryItem{}
	m.mu.Unlock()
	return nil
}

func (m *MemoryEntryStore) HealthCheck(ctx context.Context) error {
	return nil
}
