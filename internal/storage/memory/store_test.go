package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Load(ctx)
	assert.True(t, errors.Is(err, snapshot.ErrNotFound))

	blob := []byte(`{"users":[]}`)
	require.NoError(t, s.Save(ctx, blob))
	blob[0] = 'x'

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(got))

	s.FailWith = errors.New("disk full")
	assert.Error(t, s.Save(ctx, []byte(`{}`)))
	got, _ = s.Load(ctx)
	assert.Equal(t, `{"users":[]}`, string(got))
}
