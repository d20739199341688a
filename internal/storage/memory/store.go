// Package memory keeps the snapshot blob in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
)

type Store struct {
	mu   sync.RWMutex
	blob []byte
	// FailWith, when set, is returned by every Save.
	FailWith error
}

func New() *Store { return &Store{} }

// NewWithBlob returns a store that already holds blob.
func NewWithBlob(blob []byte) *Store {
	return &Store{blob: append([]byte(nil), blob...)}
}

func (s *Store) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.blob == nil {
		return nil, snapshot.ErrNotFound
	}
	return append([]byte(nil), s.blob...), nil
}

func (s *Store) Save(_ context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.blob = append([]byte(nil), blob...)
	return nil
}
