// Package report derives chart and timeline views from a state snapshot.
// Every function here is pure: the same state and filter always give the same view.
package report

import (
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// Filter is the user's selection. A nil list selects every record of that kind
// in state order; an empty non-nil list selects nothing.
type Filter struct {
	ProjectIDs   []string `json:"projectIds"`
	SubsystemIDs []string `json:"subsystemIds"`
	ActivityIDs  []string `json:"activityIds"`
}

// Resolve replaces nil selections with every id present in s.
func (f Filter) Resolve(s state.State) Filter {
	if f.ProjectIDs == nil {
		f.ProjectIDs = ids(s.Projects)
	}
	if f.SubsystemIDs == nil {
		f.SubsystemIDs = ids(s.Subsystems)
	}
	if f.ActivityIDs == nil {
		f.ActivityIDs = ids(s.Activities)
	}
	return f
}

func ids[T interface{ GetID() string }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}

const unknownLabel = "Unknown"

// label resolves a display name; dangling ids render as "Unknown".
func label(name string, ok bool) (string, bool) {
	if !ok {
		return unknownLabel, true
	}
	return name, false
}

func projectName(s state.State, id string) (string, bool) {
	p, ok := s.Project(id)
	return label(p.Name, ok)
}

func subsystemName(s state.State, id string) (string, bool) {
	sub, ok := s.Subsystem(id)
	return label(sub.Name, ok)
}

func activityName(s state.State, id string) (string, bool) {
	a, ok := s.Activity(id)
	return label(a.Name, ok)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func completed(p domain.ProjectProgress) bool {
	return p.Status == domain.StatusCompleted
}
