package state

import "github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"

// Auth is the session slice of the state tree. It is never persisted.
type Auth struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Data holds the six persisted collections. Slices keep insertion order.
type Data struct {
	Projects                 []domain.Project                 `json:"projects" yaml:"projects"`
	Subsystems               []domain.Subsystem               `json:"subsystems" yaml:"subsystems"`
	Activities               []domain.Activity                `json:"activities" yaml:"activities"`
	Progress                 []domain.ProjectProgress         `json:"progress" yaml:"progress"`
	ProjectSubsystemMappings []domain.ProjectSubsystemMapping `json:"projectSubsystemMappings" yaml:"projectSubsystemMappings"`
	Users                    []domain.User                    `json:"users" yaml:"users"`
}

// State is the whole application state tree.
// A State value is never modified after it is produced; reductions build new collections.
type State struct {
	Auth Auth `json:"auth"`
	Data
}

// New returns a logged-out state holding data.
func New(data Data) State {
	return State{Data: data}
}

func (s State) Project(id string) (domain.Project, bool)     { return find(s.Projects, id) }
func (s State) Subsystem(id string) (domain.Subsystem, bool) { return find(s.Subsystems, id) }
func (s State) Activity(id string) (domain.Activity, bool)   { return find(s.Activities, id) }
func (s State) User(id string) (domain.User, bool)           { return find(s.Users, id) }

// UserByUsername looks a user up by exact username.
func (s State) UserByUsername(username string) (domain.User, bool) {
	for _, u := range s.Users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

// MappingFor returns the subsystem mapping of a project, if any.
func (s State) MappingFor(projectID string) (domain.ProjectSubsystemMapping, bool) {
	for _, m := range s.ProjectSubsystemMappings {
		if m.ProjectID == projectID {
			return m, true
		}
	}
	return domain.ProjectSubsystemMapping{}, false
}

// ProgressFor returns the record stored under key, if any.
func (s State) ProgressFor(key domain.ProgressKey) (domain.ProjectProgress, bool) {
	for _, p := range s.Progress {
		if p.Key() == key {
			return p, true
		}
	}
	return domain.ProjectProgress{}, false
}

type identified interface {
	GetID() string
}

func find[T identified](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
