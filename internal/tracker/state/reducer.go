package state

import (
	"time"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
)

// Reduce applies a to s and returns the next state. It has no side effects and
// never mutates s; a nil action returns s unchanged.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (a Login) apply(s State) State {
	u := a.User
	s.Auth = Auth{User: &u, IsAuthenticated: true}
	return s
}

func (Logout) apply(s State) State {
	s.Auth = Auth{}
	return s
}

func (a AddProject) apply(s State) State {
	s.Projects = appendRecord(s.Projects, a.Project)
	return s
}

func (a UpdateProject) apply(s State) State {
	s.Projects = replaceByID(s.Projects, a.Project)
	return s
}

func (a DeleteProject) apply(s State) State {
	s.Projects = removeByID(s.Projects, a.ID)
	return s
}

func (a AddSubsystem) apply(s State) State {
	s.Subsystems = appendRecord(s.Subsystems, a.Subsystem)
	return s
}

func (a UpdateSubsystem) apply(s State) State {
	s.Subsystems = replaceByID(s.Subsystems, a.Subsystem)
	return s
}

func (a DeleteSubsystem) apply(s State) State {
	s.Subsystems = removeByID(s.Subsystems, a.ID)
	return s
}

func (a AddActivity) apply(s State) State {
	s.Activities = appendRecord(s.Activities, a.Activity)
	return s
}

func (a UpdateActivity) apply(s State) State {
	s.Activities = replaceByID(s.Activities, a.Activity)
	return s
}

func (a DeleteActivity) apply(s State) State {
	s.Activities = removeByID(s.Activities, a.ID)
	return s
}

func (a AddUser) apply(s State) State {
	s.Users = appendRecord(s.Users, a.User)
	return s
}

func (a UpdateUser) apply(s State) State {
	s.Users = replaceByID(s.Users, a.User)
	return s
}

func (a DeleteUser) apply(s State) State {
	s.Users = removeByID(s.Users, a.ID)
	return s
}

// apply upserts by (project, subsystem, activity, user). Dates already on the
// stored record are kept when the update omits them, then IN_PROGRESS stamps a
// missing start date and COMPLETED stamps a missing completion date.
func (a UpdateProgress) apply(s State) State {
	next := a.Progress
	key := next.Key()

	idx := -1
	for i, p := range s.Progress {
		if p.Key() == key {
			idx = i
			break
		}
	}

	if idx >= 0 {
		prev := s.Progress[idx]
		if next.StartDate == nil {
			next.StartDate = prev.StartDate
		}
		if next.CompletionDate == nil {
			next.CompletionDate = prev.CompletionDate
		}
	}

	if next.Status == domain.StatusInProgress && next.StartDate == nil {
		next.StartDate = stamp(a.At)
	}
	if next.Status == domain.StatusCompleted && next.CompletionDate == nil {
		next.CompletionDate = stamp(a.At)
	}

	if idx < 0 {
		s.Progress = appendRecord(s.Progress, next)
		return s
	}
	out := make([]domain.ProjectProgress, len(s.Progress))
	copy(out, s.Progress)
	out[idx] = next
	s.Progress = out
	return s
}

func (a MapSubsystemToProject) apply(s State) State {
	for i, m := range s.ProjectSubsystemMappings {
		if m.ProjectID != a.Mapping.ProjectID {
			continue
		}
		out := make([]domain.ProjectSubsystemMapping, len(s.ProjectSubsystemMappings))
		copy(out, s.ProjectSubsystemMappings)
		out[i] = a.Mapping
		s.ProjectSubsystemMappings = out
		return s
	}
	s.ProjectSubsystemMappings = appendRecord(s.ProjectSubsystemMappings, a.Mapping)
	return s
}

func stamp(at time.Time) *time.Time {
	if at.IsZero() {
		at = time.Now()
	}
	return &at
}

// appendRecord returns a new slice; the backing array of items is never shared.
func appendRecord[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaceByID[T identified](items []T, item T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if it.GetID() == item.GetID() {
			out[i] = item
			continue
		}
		out[i] = it
	}
	return out
}

func removeByID[T identified](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	return out
}
