package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// ActivityFilter narrows an activity listing; empty fields match everything.
type ActivityFilter struct {
	Type           domain.ActivityType
	AssociatedWith domain.Association
}

func (s *Service) Activities(f ActivityFilter) []domain.Activity {
	st := s.store.State()
	out := make([]domain.Activity, 0, len(st.Activities))
	for _, a := range st.Activities {
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.AssociatedWith != "" && a.AssociatedWith != f.AssociatedWith {
			continue
		}
		out = append(out, a)
	}
	return out
}

type CreateActivityInput struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Type           domain.ActivityType `json:"type"`
	AssociatedWith domain.Association  `json:"associatedWith"`
}

func (s *Service) CreateActivity(ctx context.Context, actor domain.User, in CreateActivityInput) (domain.Activity, error) {
	if err := s.authorize(actor, domain.PermCreateActivity); err != nil {
		return domain.Activity{}, err
	}
	if err := required("name", in.Name); err != nil {
		return domain.Activity{}, err
	}
	if !in.Type.Valid() {
		return domain.Activity{}, domain.NewValidationError("type", "must be FPGA or PROCESSOR")
	}
	if !in.AssociatedWith.Valid() {
		return domain.Activity{}, domain.NewValidationError("associatedWith", "must be PROJECT or SUBSYSTEM")
	}
	var a domain.Activity
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		id, err := s.assignID(in.ID, func(id string) bool { _, ok := st.Activity(id); return ok })
		if err != nil {
			return nil, err
		}
		a = domain.Activity{
			ID:             id,
			Name:           in.Name,
			Type:           in.Type,
			AssociatedWith: in.AssociatedWith,
			CreatedAt:      s.stamp(),
		}
		return actions(state.AddActivity{Activity: a}), nil
	})
	if err != nil {
		return domain.Activity{}, err
	}
	return a, nil
}

func (s *Service) UpdateActivity(ctx context.Context, actor domain.User, a domain.Activity) (domain.Activity, error) {
	if err := s.authorize(actor, domain.PermEditActivity); err != nil {
		return domain.Activity{}, err
	}
	if err := required("name", a.Name); err != nil {
		return domain.Activity{}, err
	}
	if a.Type != "" && !a.Type.Valid() {
		return domain.Activity{}, domain.NewValidationError("type", "must be FPGA or PROCESSOR")
	}
	if a.AssociatedWith != "" && !a.AssociatedWith.Valid() {
		return domain.Activity{}, domain.NewValidationError("associatedWith", "must be PROJECT or SUBSYSTEM")
	}

	var updated domain.Activity
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		cur, ok := st.Activity(a.ID)
		if !ok {
			return nil, fmt.Errorf("activity %s: %w", a.ID, domain.ErrNotFound)
		}
		cur.Name = a.Name
		if a.Type != "" {
			cur.Type = a.Type
		}
		if a.AssociatedWith != "" {
			cur.AssociatedWith = a.AssociatedWith
		}
		updated = cur
		return actions(state.UpdateActivity{Activity: cur}), nil
	})
	if err != nil {
		return domain.Activity{}, err
	}
	return updated, nil
}

func (s *Service) DeleteActivity(ctx context.Context, actor domain.User, id string) error {
	if err := s.authorize(actor, domain.PermDeleteActivity); err != nil {
		return err
	}
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.Activity(id); !ok {
			return nil, fmt.Errorf("activity %s: %w", id, domain.ErrNotFound)
		}
		return actions(state.DeleteActivity{ID: id}), nil
	})
	return err
}

type SetProgressInput struct {
	ProjectID  string        `json:"projectId"`
	ActivityID string        `json:"activityId"`
	Status     domain.Status `json:"status"`
	// SubsystemID defaults to the subsystem assigned to the project.
	SubsystemID string `json:"subsystemId"`
}

// SetProgress records actor's status on an activity. Dates are stamped by the reducer.
func (s *Service) SetProgress(ctx context.Context, actor domain.User, in SetProgressInput) (domain.ProjectProgress, error) {
	if err := s.authorize(actor, domain.PermUpdateOwnProgress); err != nil {
		return domain.ProjectProgress{}, err
	}
	if !in.Status.Valid() {
		return domain.ProjectProgress{}, domain.NewValidationError("status", "must be NOT_STARTED, IN_PROGRESS or COMPLETED")
	}
	p := domain.ProjectProgress{
		ProjectID:   in.ProjectID,
		ActivityID:  in.ActivityID,
		UserID:      actor.ID,
		Status:      in.Status,
		SubsystemID: in.SubsystemID,
	}
	next, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.Project(p.ProjectID); !ok {
			return nil, fmt.Errorf("project %s: %w", p.ProjectID, domain.ErrNotFound)
		}
		if _, ok := st.Activity(p.ActivityID); !ok {
			return nil, fmt.Errorf("activity %s: %w", p.ActivityID, domain.ErrNotFound)
		}
		if p.SubsystemID == "" {
			m, ok := st.MappingFor(p.ProjectID)
			if !ok {
				return nil, domain.NewValidationError("subsystemId", "project has no subsystem assigned")
			}
			p.SubsystemID = m.SubsystemID
		}
		return actions(state.UpdateProgress{Progress: p, At: s.now()}), nil
	})
	if err != nil {
		return domain.ProjectProgress{}, err
	}
	stored, _ := next.ProgressFor(p.Key())
	return stored, nil
}

// ProgressFilter narrows a progress listing; empty fields match everything.
type ProgressFilter struct {
	ProjectID   string
	SubsystemID string
	UserID      string
}

func (s *Service) Progress(f ProgressFilter) []domain.ProjectProgress {
	st := s.store.State()
	out := make([]domain.ProjectProgress, 0, len(st.Progress))
	for _, p := range st.Progress {
		if f.ProjectID != "" && p.ProjectID != f.ProjectID {
			continue
		}
		if f.SubsystemID != "" && p.SubsystemID != f.SubsystemID {
			continue
		}
		if f.UserID != "" && p.UserID != f.UserID {
			continue
		}
		out = append(out, p)
	}
	return out
}
