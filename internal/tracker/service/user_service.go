package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// Users lists accounts. Only ADMIN may see them.
func (s *Service) Users(actor domain.User) ([]domain.User, error) {
	if err := s.authorize(actor, domain.PermManageUsers); err != nil {
		return nil, err
	}
	return s.store.State().Users, nil
}

type CreateUserInput struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (s *Service) CreateUser(ctx context.Context, actor domain.User, in CreateUserInput) (domain.User, error) {
	if err := s.authorize(actor, domain.PermManageUsers); err != nil {
		return domain.User{}, err
	}
	u, err := s.newUser(domain.User{ID: in.ID, Username: in.Username, Password: in.Password, Role: in.Role})
	if err != nil {
		return domain.User{}, err
	}

	_, err = s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		add, err := s.checkNewUser(st, u)
		if err != nil {
			return nil, err
		}
		u = add.User
		return actions(add), nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// newUser validates the fields of a new account and hashes its password.
func (s *Service) newUser(u domain.User) (domain.User, error) {
	if err := required("username", u.Username); err != nil {
		return domain.User{}, err
	}
	if err := required("password", u.Password); err != nil {
		return domain.User{}, err
	}
	if !u.Role.Valid() {
		return domain.User{}, domain.NewValidationError("role", "is not a valid role")
	}
	hashed, err := s.passwords.Hash(u.Password)
	if err != nil {
		return domain.User{}, err
	}
	u.Password = hashed
	if u.CreatedAt == nil {
		u.CreatedAt = s.stamp()
	}
	return u, nil
}

// checkNewUser rejects a taken username or id and assigns an id when empty.
func (s *Service) checkNewUser(st state.State, u domain.User) (state.AddUser, error) {
	if _, taken := st.UserByUsername(u.Username); taken {
		return state.AddUser{}, domain.NewValidationError("", "Username already exists")
	}
	id, err := s.assignID(u.ID, func(id string) bool { _, ok := st.User(id); return ok })
	if err != nil {
		return state.AddUser{}, err
	}
	u.ID = id
	return state.AddUser{User: u}, nil
}

type UpdateUserInput struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	// Password is left unchanged when empty.
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (s *Service) UpdateUser(ctx context.Context, actor domain.User, in UpdateUserInput) (domain.User, error) {
	if err := s.authorize(actor, domain.PermManageUsers); err != nil {
		return domain.User{}, err
	}
	if in.Role != "" && !in.Role.Valid() {
		return domain.User{}, domain.NewValidationError("role", "is not a valid role")
	}
	hashed := ""
	if in.Password != "" {
		var err error
		if hashed, err = s.passwords.Hash(in.Password); err != nil {
			return domain.User{}, err
		}
	}

	var updated domain.User
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		cur, ok := st.User(in.ID)
		if !ok {
			return nil, fmt.Errorf("user %s: %w", in.ID, domain.ErrNotFound)
		}
		if in.Username != "" {
			cur.Username = in.Username
		}
		if in.Role != "" {
			cur.Role = in.Role
		}
		if hashed != "" {
			cur.Password = hashed
		}
		if err := checkUsernameFree(st, cur); err != nil {
			return nil, err
		}
		updated = cur
		return actions(state.UpdateUser{User: cur}), nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

// checkUsernameFree fails when another account already uses u's username.
func checkUsernameFree(st state.State, u domain.User) error {
	if other, taken := st.UserByUsername(u.Username); taken && other.ID != u.ID {
		return domain.NewValidationError("", "Username already exists")
	}
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, actor domain.User, id string) error {
	if err := s.authorize(actor, domain.PermManageUsers); err != nil {
		return err
	}
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.User(id); !ok {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return actions(state.DeleteUser{ID: id}), nil
	})
	return err
}
