package state

import (
	"time"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
)

// Action is the closed vocabulary of state mutations.
// The interface is sealed: every action type lives in this package and must
// implement apply, so adding an action without its reduction does not compile.
type Action interface {
	// Type is the wire name of the action, e.g. "ADD_PROJECT".
	Type() string
	// Persists reports whether the store writes the snapshot after this action.
	Persists() bool

	apply(State) State
}

const (
	TypeLogin                 = "LOGIN"
	TypeLogout                = "LOGOUT"
	TypeAddProject            = "ADD_PROJECT"
	TypeUpdateProject         = "UPDATE_PROJECT"
	TypeDeleteProject         = "DELETE_PROJECT"
	TypeAddSubsystem          = "ADD_SUBSYSTEM"
	TypeUpdateSubsystem       = "UPDATE_SUBSYSTEM"
	TypeDeleteSubsystem       = "DELETE_SUBSYSTEM"
	TypeAddActivity           = "ADD_ACTIVITY"
	TypeUpdateActivity        = "UPDATE_ACTIVITY"
	TypeDeleteActivity        = "DELETE_ACTIVITY"
	TypeUpdateProgress        = "UPDATE_PROGRESS"
	TypeAddUser               = "ADD_USER"
	TypeUpdateUser            = "UPDATE_USER"
	TypeDeleteUser            = "DELETE_USER"
	TypeMapSubsystemToProject = "MAP_SUBSYSTEM_TO_PROJECT"
)

// persisted is embedded by every action that is written back to storage.
type persisted struct{}

func (persisted) Persists() bool { return true }

// Login sets the authenticated user. Credentials must already be checked.
type Login struct{ User domain.User }

// Logout clears the session.
type Logout struct{}

type AddProject struct {
	persisted
	Project domain.Project
}

type UpdateProject struct {
	persisted
	Project domain.Project
}

type DeleteProject struct {
	persisted
	ID string
}

type AddSubsystem struct {
	persisted
	Subsystem domain.Subsystem
}

type UpdateSubsystem struct {
	persisted
	Subsystem domain.Subsystem
}

type DeleteSubsystem struct {
	persisted
	ID string
}

type AddActivity struct {
	persisted
	Activity domain.Activity
}

type UpdateActivity struct {
	persisted
	Activity domain.Activity
}

type DeleteActivity struct {
	persisted
	ID string
}

// UpdateProgress upserts a progress record by its key. At is the instant used
// when a start or completion date has to be stamped.
type UpdateProgress struct {
	persisted
	Progress domain.ProjectProgress
	At       time.Time
}

type AddUser struct {
	persisted
	User domain.User
}

type UpdateUser struct {
	persisted
	User domain.User
}

type DeleteUser struct {
	persisted
	ID string
}

// MapSubsystemToProject replaces the subsystem assignment of a project.
type MapSubsystemToProject struct {
	persisted
	Mapping domain.ProjectSubsystemMapping
}

func (Login) Type() string                 { return TypeLogin }
func (Logout) Type() string                { return TypeLogout }
func (AddProject) Type() string            { return TypeAddProject }
func (UpdateProject) Type() string         { return TypeUpdateProject }
func (DeleteProject) Type() string         { return TypeDeleteProject }
func (AddSubsystem) Type() string          { return TypeAddSubsystem }
func (UpdateSubsystem) Type() string       { return TypeUpdateSubsystem }
func (DeleteSubsystem) Type() string       { return TypeDeleteSubsystem }
func (AddActivity) Type() string           { return TypeAddActivity }
func (UpdateActivity) Type() string        { return TypeUpdateActivity }
func (DeleteActivity) Type() string        { return TypeDeleteActivity }
func (UpdateProgress) Type() string        { return TypeUpdateProgress }
func (AddUser) Type() string               { return TypeAddUser }
func (UpdateUser) Type() string            { return TypeUpdateUser }
func (DeleteUser) Type() string            { return TypeDeleteUser }
func (MapSubsystemToProject) Type() string { return TypeMapSubsystemToProject }

func (Login) Persists() bool  { return false }
func (Logout) Persists() bool { return false }
