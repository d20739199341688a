// Package store holds the application state tree for the lifetime of the process.
package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/snapshot"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// Store is the single mutator of the state tree. Dispatch calls are serialized;
// State may be called concurrently and never blocks on a write.
type Store struct {
	storage snapshot.Storage
	log     *zap.Logger
	now     func() time.Time

	mu  sync.Mutex
	cur atomic.Pointer[state.State]
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the source of the instant stamped on progress updates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads the persisted collections from storage. Anything missing or
// unreadable is taken from seed, so New never fails.
func New(ctx context.Context, storage snapshot.Storage, seed state.Data, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	initial := state.New(s.load(ctx, seed))
	s.cur.Store(&initial)
	return s
}

func (s *Store) load(ctx context.Context, seed state.Data) state.Data {
	blob, err := s.storage.Load(ctx)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		s.log.Info("no stored snapshot, starting from seed data")
		return seed
	case err != nil:
		s.log.Warn("failed to read snapshot, starting from seed data", zap.Error(err))
		return seed
	}

	data, rep := snapshot.Decode(blob, seed)
	for field, reason := range rep.Fallbacks {
		metrics.IncrementLoadFallback(field)
		s.log.Warn("snapshot field restored from seed",
			zap.String("field", field),
			zap.String("reason", reason),
		)
	}
	s.log.Info("state loaded", zap.Strings("restored", rep.Restored))
	return data
}

// State returns the current state. The value is never modified afterwards.
func (s *Store) State() state.State {
	return *s.cur.Load()
}

// Dispatch reduces a into the current state and, when the action persists,
// writes the new collections to storage before returning. A failed write is
// logged and counted; the in-memory state still advances.
func (s *Store) Dispatch(ctx context.Context, a state.Action) state.State {
	if a == nil {
		return s.State()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reduce(ctx, *s.cur.Load(), a)
}

// DispatchFunc calls fn with the current state and reduces the actions it
// returns, in order, without letting any other dispatch run in between. When
// fn fails nothing is dispatched and the current state is returned with the error.
func (s *Store) DispatchFunc(ctx context.Context, fn func(state.State) ([]state.Action, error)) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.cur.Load()
	actions, err := fn(cur)
	if err != nil {
		return cur, err
	}
	for _, a := range actions {
		if a != nil {
			cur = s.reduce(ctx, cur, a)
		}
	}
	return cur, nil
}

// reduce must be called with mu held.
func (s *Store) reduce(ctx context.Context, cur state.State, a state.Action) state.State {
	if up, ok := a.(state.UpdateProgress); ok && up.At.IsZero() {
		up.At = s.now()
		a = up
	}

	next := state.Reduce(cur, a)
	s.cur.Store(&next)
	metrics.IncrementDispatch(a.Type())

	if a.Persists() {
		s.persist(ctx, next.Data, a.Type())
	}
	return next
}

func (s *Store) persist(ctx context.Context, data state.Data, action string) {
	start := time.Now()
	blob, err := snapshot.Encode(data)
	if err == nil {
		err = s.storage.Save(ctx, blob)
	}
	metrics.RecordPersist(err, time.Since(start))
	if err != nil {
		s.log.Error("failed to persist state",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// Snapshot returns the persisted form of the current collections.
func (s *Store) Snapshot() ([]byte, error) {
	return snapshot.Encode(s.State().Data)
}
