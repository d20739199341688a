package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

const minPasswordLength = 6

// Authenticate checks username, password and role against the stored users.
// All three must match; on success LOGIN is dispatched with the matched user.
func (s *Service) Authenticate(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	u, ok := s.store.State().UserByUsername(username)
	if !ok || u.Role != role || !s.passwords.Verify(u.Password, password) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	s.store.Dispatch(ctx, state.Login{User: u})
	s.log.Info("user logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

type RegisterInput struct {
	Username        string      `json:"username"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	Role            domain.Role `json:"role"`
}

// Register validates the sign-up form, then dispatches ADD_USER followed by
// LOGIN. Nothing is dispatched when validation fails.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := required("username", in.Username); err != nil {
		return domain.User{}, err
	}
	if err := required("password", in.Password); err != nil {
		return domain.User{}, err
	}
	if !in.Role.Valid() {
		return domain.User{}, domain.NewValidationError("role", "is not a valid role")
	}
	if in.Password != in.ConfirmPassword {
		return domain.User{}, domain.NewValidationError("", "Passwords do not match")
	}
	if len(in.Password) < minPasswordLength {
		return domain.User{}, domain.NewValidationError("", "Password must be at least 6 characters long")
	}

	hashed, err := s.passwords.Hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		Username:  in.Username,
		Password:  hashed,
		Role:      in.Role,
		CreatedAt: s.stamp(),
	}
	_, err = s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		add, err := s.checkNewUser(st, u)
		if err != nil {
			return nil, err
		}
		u = add.User
		return actions(add, state.Login{User: u}), nil
	})
	if err != nil {
		return domain.User{}, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Logout clears the session slice of the state.
func (s *Service) Logout(ctx context.Context) {
	s.store.Dispatch(ctx, state.Logout{})
}

// Me returns the stored record of the user behind a session.
func (s *Service) Me(userID string) (domain.User, error) {
	u, ok := s.store.State().User(userID)
	if !ok {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return u, nil
}
