package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestStore_LoadSave(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := New(client, "")
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.True(t, errors.Is(err, snapshot.ErrNotFound))
	})

	t.Run("save writes the default key", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []byte(`{"users":[]}`)))

		raw, err := mr.Get(snapshot.DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, `{"users":[]}`, raw)
		assert.Zero(t, mr.TTL(snapshot.DefaultKey))
	})

	t.Run("load reads back", func(t *testing.T) {
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"users":[]}`, string(got))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestStore_ServerDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := New(client, "custom")
	mr.Close()

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, snapshot.ErrNotFound))
	assert.Error(t, store.Save(context.Background(), []byte(`{}`)))
}
