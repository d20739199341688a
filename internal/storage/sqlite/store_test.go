package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

func TestStore_InMemory(t *testing.T) {
	store, err := Open(":memory:", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	_, err = store.Load(ctx)
	assert.True(t, errors.Is(err, snapshot.ErrNotFound))

	require.NoError(t, store.Save(ctx, []byte(`{"users":[]}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"users":[{"id":"1"}]}`)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[{"id":"1"}]}`, string(got))
	assert.NoError(t, store.Ping(ctx))
}

func TestStore_ReopenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qatrack.db")
	ctx := context.Background()

	first, err := Open(path, "k")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, []byte(`{"projects":[]}`)))
	require.NoError(t, first.Close())

	second, err := Open(path, "k")
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"projects":[]}`, string(got))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ", "")
	assert.Error(t, err)
}
