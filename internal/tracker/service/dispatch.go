package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// Dispatch applies a raw protocol action on behalf of actor after the same
// role, uniqueness and password checks the typed operations make. Adds with
// an empty id get a generated one. LOGIN is refused here because it would
// bypass the credential check.
func (s *Service) Dispatch(ctx context.Context, actor domain.User, a state.Action) (state.State, error) {
	if a == nil {
		return s.store.State(), nil
	}
	if _, ok := a.(state.Login); ok {
		return s.store.State(), domain.NewValidationError("type", "LOGIN requires credentials, use the login endpoint")
	}
	if perm, gated := dispatchPermission(a); gated {
		if err := s.authorize(actor, perm); err != nil {
			return s.store.State(), err
		}
	}

	var err error
	switch act := a.(type) {
	case state.UpdateProgress:
		if act.Progress.UserID != actor.ID {
			return s.store.State(), fmt.Errorf("progress of another user: %w", domain.ErrForbidden)
		}
		if !act.Progress.Status.Valid() {
			return s.store.State(), domain.NewValidationError("status", "must be NOT_STARTED, IN_PROGRESS or COMPLETED")
		}
	case state.AddUser:
		if act.User, err = s.newUser(act.User); err != nil {
			return s.store.State(), err
		}
		a = act
	case state.UpdateUser:
		if act.User.Role != "" && !act.User.Role.Valid() {
			return s.store.State(), domain.NewValidationError("role", "is not a valid role")
		}
		if act.User.Password != "" {
			if act.User.Password, err = s.passwords.Hash(act.User.Password); err != nil {
				return s.store.State(), err
			}
		}
		a = act
	}

	return s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		checked, err := s.checkDispatch(st, a)
		if err != nil {
			return nil, err
		}
		return actions(checked), nil
	})
}

// dispatchPermission reports the permission a requires. LOGOUT needs none.
func dispatchPermission(a state.Action) (domain.Permission, bool) {
	var perm domain.Permission
	switch a.(type) {
	case state.AddProject:
		perm = domain.PermCreateProject
	case state.UpdateProject:
		perm = domain.PermEditProject
	case state.DeleteProject:
		perm = domain.PermDeleteProject
	case state.MapSubsystemToProject:
		perm = domain.PermAssignSubsystem
	case state.AddSubsystem:
		perm = domain.PermCreateSubsystem
	case state.UpdateSubsystem:
		perm = domain.PermEditSubsystem
	case state.DeleteSubsystem:
		perm = domain.PermDeleteSubsystem
	case state.AddActivity:
		perm = domain.PermCreateActivity
	case state.UpdateActivity:
		perm = domain.PermEditActivity
	case state.DeleteActivity:
		perm = domain.PermDeleteActivity
	case state.UpdateProgress:
		perm = domain.PermUpdateOwnProgress
	case state.AddUser, state.UpdateUser, state.DeleteUser:
		perm = domain.PermManageUsers
	default:
		return "", false
	}
	return perm, true
}

// checkDispatch runs the state dependent checks on a and fills generated ids.
// It is called under the store lock.
func (s *Service) checkDispatch(st state.State, a state.Action) (state.Action, error) {
	switch act := a.(type) {
	case state.AddProject:
		id, err := s.assignID(act.Project.ID, func(id string) bool { _, ok := st.Project(id); return ok })
		if err != nil {
			return nil, err
		}
		act.Project.ID = id
		return act, nil
	case state.AddSubsystem:
		id, err := s.assignID(act.Subsystem.ID, func(id string) bool { _, ok := st.Subsystem(id); return ok })
		if err != nil {
			return nil, err
		}
		act.Subsystem.ID = id
		return act, nil
	case state.AddActivity:
		id, err := s.assignID(act.Activity.ID, func(id string) bool { _, ok := st.Activity(id); return ok })
		if err != nil {
			return nil, err
		}
		act.Activity.ID = id
		return act, nil
	case state.AddUser:
		return s.checkNewUser(st, act.User)
	case state.UpdateUser:
		cur, ok := st.User(act.User.ID)
		if !ok {
			return nil, fmt.Errorf("user %s: %w", act.User.ID, domain.ErrNotFound)
		}
		if act.User.Username == "" {
			act.User.Username = cur.Username
		}
		if act.User.Role == "" {
			act.User.Role = cur.Role
		}
		if act.User.Password == "" {
			act.User.Password = cur.Password
		}
		if act.User.CreatedAt == nil {
			act.User.CreatedAt = cur.CreatedAt
		}
		if err := checkUsernameFree(st, act.User); err != nil {
			return nil, err
		}
		return act, nil
	}
	return a, nil
}
