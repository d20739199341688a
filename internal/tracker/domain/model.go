package domain

import "time"

// User is an account that can log in and record progress.
// Password is stored as given; see auth.PasswordScheme for the comparison rule.
type User struct {
	ID        string     `json:"id" yaml:"id"`
	Username  string     `json:"username" yaml:"username"`
	Password  string     `json:"password" yaml:"password"`
	Role      Role       `json:"role" yaml:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Project is a program under QA tracking.
type Project struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	ProgramType string    `json:"programType" yaml:"programType"`
	CreatedBy   string    `json:"createdBy" yaml:"createdBy"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

type Subsystem struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Activity is a milestone, review or audit scoped to a project or a subsystem.
type Activity struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	Type           ActivityType `json:"type" yaml:"type"`
	AssociatedWith Association  `json:"associatedWith" yaml:"associatedWith"`
	CreatedAt      *time.Time   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// ProjectSubsystemMapping is the single active subsystem assignment of a project.
type ProjectSubsystemMapping struct {
	ProjectID   string     `json:"projectId" yaml:"projectId"`
	SubsystemID string     `json:"subsystemId" yaml:"subsystemId"`
	AssignedBy  string     `json:"assignedBy,omitempty" yaml:"assignedBy,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// ProjectProgress is one user's status on one activity within a project/subsystem pair.
type ProjectProgress struct {
	ProjectID      string     `json:"projectId" yaml:"projectId"`
	SubsystemID    string     `json:"subsystemId" yaml:"subsystemId"`
	ActivityID     string     `json:"activityId" yaml:"activityId"`
	UserID         string     `json:"userId" yaml:"userId"`
	Status         Status     `json:"status" yaml:"status"`
	StartDate      *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty" yaml:"completionDate,omitempty"`
}

// ProgressKey identifies a progress record. At most one record exists per key.
type ProgressKey struct {
	ProjectID   string
	SubsystemID string
	ActivityID  string
	UserID      string
}

func (p ProjectProgress) Key() ProgressKey {
	return ProgressKey{
		ProjectID:   p.ProjectID,
		SubsystemID: p.SubsystemID,
		ActivityID:  p.ActivityID,
		UserID:      p.UserID,
	}
}

// GetID lets the generic collection helpers address records by id.
func (u User) GetID() string      { return u.ID }
func (p Project) GetID() string   { return p.ID }
func (s Subsystem) GetID() string { return s.ID }
func (a Activity) GetID() string  { return a.ID }
