package domain

import "strings"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RolePM       Role = "PM"
	RoleDPD      Role = "DPD"
	RoleEngineer Role = "ENGINEER"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RolePM, RoleDPD, RoleEngineer}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePM, RoleDPD, RoleEngineer:
		return true
	}
	return false
}

// DisplayName returns the label shown for a role.
func (r Role) DisplayName() string {
	if r == RoleDPD {
		return "Deputy Project Director"
	}
	return string(r)
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

type ActivityType string

const (
	ActivityFPGA      ActivityType = "FPGA"
	ActivityProcessor ActivityType = "PROCESSOR"
)

func (t ActivityType) Valid() bool {
	return t == ActivityFPGA || t == ActivityProcessor
}

type Association string

const (
	AssociatedWithProject   Association = "PROJECT"
	AssociatedWithSubsystem Association = "SUBSYSTEM"
)

func (a Association) Valid() bool {
	return a == AssociatedWithProject || a == AssociatedWithSubsystem
}

// Status is the progress state of an activity.
// The UI offers NOT_STARTED -> IN_PROGRESS -> COMPLETED but any jump is accepted.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
