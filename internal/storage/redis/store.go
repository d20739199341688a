// Package redis keeps the snapshot blob under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

// Store reads and writes the blob with GET/SET; the key never expires.
type Store struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Store {
	if key == "" {
		key = snapshot.DefaultKey
	}
	return &Store{client: client, key: key}
}

func (s *Store) Key() string { return s.key }

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, snapshot.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return b, nil
}

func (s *Store) Save(ctx context.Context, blob []byte) error {
	if err := s.client.Set(ctx, s.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
