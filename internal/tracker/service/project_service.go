package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

type CreateProjectInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProgramType string `json:"programType"`
	SubsystemID string `json:"subsystemId"`
}

// CreateProject adds a project and assigns its subsystem in one step.
func (s *Service) CreateProject(ctx context.Context, actor domain.User, in CreateProjectInput) (domain.Project, error) {
	if err := s.authorize(actor, domain.PermCreateProject); err != nil {
		return domain.Project{}, err
	}
	if err := required("name", in.Name); err != nil {
		return domain.Project{}, err
	}
	if err := required("programType", in.ProgramType); err != nil {
		return domain.Project{}, err
	}
	if err := required("subsystemId", in.SubsystemID); err != nil {
		return domain.Project{}, err
	}

	now := s.now()
	var p domain.Project
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.Subsystem(in.SubsystemID); !ok {
			return nil, fmt.Errorf("subsystem %s: %w", in.SubsystemID, domain.ErrNotFound)
		}
		id, err := s.assignID(in.ID, func(id string) bool { _, ok := st.Project(id); return ok })
		if err != nil {
			return nil, err
		}
		p = domain.Project{
			ID:          id,
			Name:        in.Name,
			ProgramType: in.ProgramType,
			CreatedBy:   actor.ID,
			CreatedAt:   now,
		}
		return actions(
			state.AddProject{Project: p},
			state.MapSubsystemToProject{Mapping: domain.ProjectSubsystemMapping{
				ProjectID:   p.ID,
				SubsystemID: in.SubsystemID,
				AssignedBy:  actor.ID,
				CreatedAt:   &now,
			}},
		), nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// UpdateProject replaces name and program type; creator and creation date are kept.
func (s *Service) UpdateProject(ctx context.Context, actor domain.User, p domain.Project) (domain.Project, error) {
	if err := s.authorize(actor, domain.PermEditProject); err != nil {
		return domain.Project{}, err
	}
	if err := required("name", p.Name); err != nil {
		return domain.Project{}, err
	}

	var updated domain.Project
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		cur, ok := st.Project(p.ID)
		if !ok {
			return nil, fmt.Errorf("project %s: %w", p.ID, domain.ErrNotFound)
		}
		cur.Name = p.Name
		if p.ProgramType != "" {
			cur.ProgramType = p.ProgramType
		}
		updated = cur
		return actions(state.UpdateProject{Project: cur}), nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return updated, nil
}

func (s *Service) DeleteProject(ctx context.Context, actor domain.User, id string) error {
	if err := s.authorize(actor, domain.PermDeleteProject); err != nil {
		return err
	}
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.Project(id); !ok {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return actions(state.DeleteProject{ID: id}), nil
	})
	return err
}

// AssignSubsystem replaces the subsystem mapping of a project.
func (s *Service) AssignSubsystem(ctx context.Context, actor domain.User, projectID, subsystemID string) (domain.ProjectSubsystemMapping, error) {
	if err := s.authorize(actor, domain.PermAssignSubsystem); err != nil {
		return domain.ProjectSubsystemMapping{}, err
	}
	if err := required("subsystemId", subsystemID); err != nil {
		return domain.ProjectSubsystemMapping{}, err
	}
	m := domain.ProjectSubsystemMapping{
		ProjectID:   projectID,
		SubsystemID: subsystemID,
		AssignedBy:  actor.ID,
		CreatedAt:   s.stamp(),
	}
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.Project(projectID); !ok {
			return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		if _, ok := st.Subsystem(subsystemID); !ok {
			return nil, fmt.Errorf("subsystem %s: %w", subsystemID, domain.ErrNotFound)
		}
		return actions(state.MapSubsystemToProject{Mapping: m}), nil
	})
	if err != nil {
		return domain.ProjectSubsystemMapping{}, err
	}
	return m, nil
}

// ProjectView is a project together with its assigned subsystem, if any.
type ProjectView struct {
	domain.Project
	Subsystem *domain.Subsystem `json:"subsystem"`
}

// Projects lists every project with its mapped subsystem, in state order.
func (s *Service) Projects() []ProjectView {
	return projectViews(s.store.State())
}

func projectViews(st state.State) []ProjectView {
	out := make([]ProjectView, 0, len(st.Projects))
	for _, p := range st.Projects {
		v := ProjectView{Project: p}
		if m, ok := st.MappingFor(p.ID); ok {
			if sub, ok := st.Subsystem(m.SubsystemID); ok {
				v.Subsystem = &sub
			}
		}
		out = append(out, v)
	}
	return out
}

// UserProject is a project as seen by one user, with that user's progress counts
// on the assigned subsystem.
type UserProject struct {
	ProjectView
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Total      int `json:"total"`
}

// ProjectsForUser lists every project with actor's own progress counts.
func (s *Service) ProjectsForUser(actor domain.User) []UserProject {
	st := s.store.State()
	views := projectViews(st)
	out := make([]UserProject, 0, len(views))
	for _, v := range views {
		up := UserProject{ProjectView: v}
		if v.Subsystem != nil {
			for _, p := range st.Progress {
				if p.ProjectID != v.ID || p.SubsystemID != v.Subsystem.ID || p.UserID != actor.ID {
					continue
				}
				up.Total++
				switch p.Status {
				case domain.StatusCompleted:
					up.Completed++
				case domain.StatusInProgress:
					up.InProgress++
				}
			}
		}
		out = append(out, up)
	}
	return out
}

type CreateSubsystemInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Service) CreateSubsystem(ctx context.Context, actor domain.User, in CreateSubsystemInput) (domain.Subsystem, error) {
	if err := s.authorize(actor, domain.PermCreateSubsystem); err != nil {
		return domain.Subsystem{}, err
	}
	if err := required("name", in.Name); err != nil {
		return domain.Subsystem{}, err
	}
	var sub domain.Subsystem
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		id, err := s.assignID(in.ID, func(id string) bool { _, ok := st.Subsystem(id); return ok })
		if err != nil {
			return nil, err
		}
		sub = domain.Subsystem{ID: id, Name: in.Name, CreatedAt: s.stamp()}
		return actions(state.AddSubsystem{Subsystem: sub}), nil
	})
	if err != nil {
		return domain.Subsystem{}, err
	}
	return sub, nil
}

func (s *Service) UpdateSubsystem(ctx context.Context, actor domain.User, sub domain.Subsystem) (domain.Subsystem, error) {
	if err := s.authorize(actor, domain.PermEditSubsystem); err != nil {
		return domain.Subsystem{}, err
	}
	if err := required("name", sub.Name); err != nil {
		return domain.Subsystem{}, err
	}

	var updated domain.Subsystem
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		cur, ok := st.Subsystem(sub.ID)
		if !ok {
			return nil, fmt.Errorf("subsystem %s: %w", sub.ID, domain.ErrNotFound)
		}
		cur.Name = sub.Name
		updated = cur
		return actions(state.UpdateSubsystem{Subsystem: cur}), nil
	})
	if err != nil {
		return domain.Subsystem{}, err
	}
	return updated, nil
}

func (s *Service) DeleteSubsystem(ctx context.Context, actor domain.User, id string) error {
	if err := s.authorize(actor, domain.PermDeleteSubsystem); err != nil {
		return err
	}
	_, err := s.store.DispatchFunc(ctx, func(st state.State) ([]state.Action, error) {
		if _, ok := st.Subsystem(id); !ok {
			return nil, fmt.Errorf("subsystem %s: %w", id, domain.ErrNotFound)
		}
		return actions(state.DeleteSubsystem{ID: id}), nil
	})
	return err
}
