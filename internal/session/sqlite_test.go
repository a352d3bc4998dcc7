package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/iishyfishyy/lazyshell/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestProvider_UnknownSession(t *testing.T) {
	store, _ := openTestStore(t)

	_, ok, err := store.Provider(context.Background(), "4242")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetProvider_Upserts(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetProvider(ctx, "4242", provider.Anthropic))
	require.NoError(t, store.SetProvider(ctx, "4242", provider.OpenAI))
	require.NoError(t, store.SetProvider(ctx, "777", provider.Anthropic))

	id, ok, err := store.Provider(ctx, "4242")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, provider.OpenAI, id)

	id, _, err = store.Provider(ctx, "777")
	require.NoError(t, err)
	assert.Equal(t, provider.Anthropic, id)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	store, path := openTestStore(t)
	require.NoError(t, store.SetProvider(context.Background(), "1", provider.Anthropic))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	id, ok, err := reopened.Provider(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, provider.Anthropic, id)
}

func TestPrune(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	require.NoError(t, store.SetProvider(ctx, "old", provider.OpenAI))

	store.now = func() time.Time { return base.Add(10 * 24 * time.Hour) }
	require.NoError(t, store.SetProvider(ctx, "fresh", provider.OpenAI))

	removed, err := store.Prune(ctx, DefaultMaxAge)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, ok, _ := store.Provider(ctx, "old")
	assert.False(t, ok)
	_, ok, _ = store.Provider(ctx, "fresh")
	assert.True(t, ok)
}
