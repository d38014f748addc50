package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "bkcloud", "session.toml"))
	require.NoError(t, err)
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	obtained := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, domain.Session{
		ID:         "sess-1",
		Login:      "alice",
		ObtainedAt: obtained,
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("sess-1"), loaded.ID)
	assert.Equal(t, "alice", loaded.Login)
	assert.True(t, loaded.ObtainedAt.Equal(obtained))
}

func TestLoadMissingFileIsNoSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestClearRemovesSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "sess-2"}))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestClearWithoutFileIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Clear(context.Background()))
}

func TestSaveRejectsEmptySessionID(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), domain.Session{}))
}

func TestSessionFilePermissions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{ID: "sess-3"}))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
