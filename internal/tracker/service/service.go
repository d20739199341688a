package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// Store is the state container the service reads from and dispatches to.
// DispatchFunc holds off every other dispatch while fn checks the state, so a
// check and the actions it allows are applied as one step.
type Store interface {
	State() state.State
	Dispatch(ctx context.Context, a state.Action) state.State
	DispatchFunc(ctx context.Context, fn func(state.State) ([]state.Action, error)) (state.State, error)
}

// PasswordScheme stores and compares user passwords.
type PasswordScheme interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

// Service applies credential checks, validation and role gating before
// dispatching actions to the store.
type Service struct {
	store     Store
	passwords PasswordScheme
	log       *zap.Logger
	newID     func() string
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over store using passwords for credential storage.
func New(store Store, passwords PasswordScheme, opts ...Option) *Service {
	s := &Service{
		store:     store,
		passwords: passwords,
		log:       zap.NewNop(),
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state snapshot.
func (s *Service) State() state.State {
	return s.store.State()
}

func (s *Service) authorize(actor domain.User, perm domain.Permission) error {
	if err := domain.CheckPermission(actor.Role, perm); err != nil {
		s.log.Info("permission denied",
			zap.String("user_id", actor.ID),
			zap.String("role", string(actor.Role)),
			zap.String("permission", string(perm)),
		)
		return err
	}
	return nil
}

// assignID fills an empty id and rejects one already in use.
func (s *Service) assignID(id string, exists func(string) bool) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return s.newID(), nil
	}
	if exists(id) {
		return "", fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
	}
	return id, nil
}

func actions(a ...state.Action) []state.Action { return a }

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "is required")
	}
	return nil
}

func (s *Service) stamp() *time.Time {
	t := s.now()
	return &t
}
