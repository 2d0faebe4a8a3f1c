package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docurio.ai/docurio-client/app/utils/clock"
)

func TestMemoryEntryStoreSetGet(t *testing.T) {
	store := NewMemoryEntryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "v1:identity")
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, store.Set(ctx, "v1:identity", `{"user_id":"u_1"}`, 0))
	val, err := store.Get(ctx, "v1:identity")
	require.NoError(t, err)
	assert.Equal(t, `{"user_id":"u_1"}`, val)

	ok, err := store.Exists(ctx, "v1:identity")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "v1:identity"))
	_, err = store.Get(ctx, "v1:identity")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemoryEntryStoreExpiry(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	store := NewMemoryEntryStoreWithClock(clk)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "v1:identity", "{}", time.Minute))
	_, err := store.Get(ctx, "v1:identity")
	require.NoError(t, err)

	clk.Advance(61 * time.Second)
	_, err = store.Get(ctx, "v1:identity")
	assert.Equal(t, ErrNotFound, err, "expired item must read as absent")

	ok, err := store.Exists(ctx, "v1:identity")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryEntryStoreDeletePattern(t *testing.T) {
	store := NewMemoryEntryStore()
	ctx := context.Background()
	for _, key := range []string{"v1:job-list:1:25", "v1:job-list:2:25", "v1:job:j_1", "v1:template-list"} {
		require.NoError(t, store.Set(ctx, key, "{}", 0))
	}

	require.NoError(t, store.DeletePattern(ctx, "v1:job-list:*"))

	_, err := store.Get(ctx, "v1:job-list:1:25")
	assert.Equal(t, ErrNotFound, err)
	_, err = store.Get(ctx, "v1:job-list:2:25")
	assert.Equal(t, ErrNotFound, err)
	_, err = store.Get(ctx, "v1:job:j_1")
	assert.NoError(t, err, "keys outside the pattern survive")

	require.NoError(t, store.DeletePattern(ctx, "v1:template-list"))
	_, err = store.Get(ctx, "v1:template-list")
	assert.Equal(t, ErrNotFound, err, "exact pattern deletes the single key")
}

func TestMemoryEntryStoreHealthAndClose(t *testing.T) {
	store := NewMemoryEntryStore()
	ctx := context.Background()
	require.NoError(t, store.HealthCheck(ctx))
	require.NoError(t, store.Set(ctx, "v1:identity", "{}", 0))
	require.NoError(t, store.Close())
	_, err := store.Get(ctx, "v1:identity")
	assert.Equal(t, ErrNotFound, err, "close drops all items")
}
