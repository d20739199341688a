// Package snapshot encodes the persisted part of the state tree as a single JSON
// blob with six keys and decodes it back with per-field fallback to seed data.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// DefaultKey is the name of the blob in storage.
const DefaultKey = "projectManagementState"

// ErrNotFound is returned by Storage.Load when no blob has been written yet.
var ErrNotFound = errors.New("snapshot not found")

// Storage is durable storage for one named blob.
// Save must replace the whole blob in a single write.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// Field names of the blob, in write order.
const (
	FieldProjects   = "projects"
	FieldSubsystems = "subsystems"
	FieldActivities = "activities"
	FieldProgress   = "progress"
	FieldMappings   = "projectSubsystemMappings"
	FieldUsers      = "users"
)

var Fields = []string{FieldProjects, FieldSubsystems, FieldActivities, FieldProgress, FieldMappings, FieldUsers}

// Encode serializes the six persisted collections. Auth is never included.
// Nil collections are written as empty arrays so that a reload keeps them empty.
func Encode(d state.Data) ([]byte, error) {
	d = nonNil(d)
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// Report lists the fields that were taken from the fallback and why.
type Report struct {
	Restored  []string
	Fallbacks map[string]string
}

func (r Report) Complete() bool { return len(r.Fallbacks) == 0 }

// Decode rebuilds the collections from blob. Every field that is absent, null or
// malformed is taken from fallback; a blob that is not a JSON object falls back
// entirely. Decode never fails.
func Decode(blob []byte, fallback state.Data) (state.Data, Report) {
	rep := Report{Fallbacks: map[string]string{}}

	var fields map[string]json.RawMessage
	if len(blob) == 0 {
		for _, f := range Fields {
			rep.Fallbacks[f] = "empty snapshot"
		}
		return fallback, rep
	}
	if err := json.Unmarshal(blob, &fields); err != nil || fields == nil {
		reason := "snapshot is not a JSON object"
		if err != nil {
			reason = err.Error()
		}
		for _, f := range Fields {
			rep.Fallbacks[f] = reason
		}
		return fallback, rep
	}

	out := fallback
	field(fields, FieldProjects, &out.Projects, &rep)
	field(fields, FieldSubsystems, &out.Subsystems, &rep)
	field(fields, FieldActivities, &out.Activities, &rep)
	field(fields, FieldProgress, &out.Progress, &rep)
	field(fields, FieldMappings, &out.ProjectSubsystemMappings, &rep)
	field(fields, FieldUsers, &out.Users, &rep)
	return out, rep
}

// field decodes fields[name] into dst, leaving dst at its fallback value on any problem.
func field[T any](fields map[string]json.RawMessage, name string, dst *[]T, rep *Report) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		rep.Fallbacks[name] = "missing"
		return
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		rep.Fallbacks[name] = err.Error()
		return
	}
	if v == nil {
		v = []T{}
	}
	*dst = v
	rep.Restored = append(rep.Restored, name)
}

func nonNil(d state.Data) state.Data {
	d.Projects = orEmpty(d.Projects)
	d.Subsystems = orEmpty(d.Subsystems)
	d.Activities = orEmpty(d.Activities)
	d.Progress = orEmpty(d.Progress)
	d.ProjectSubsystemMappings = orEmpty(d.ProjectSubsystemMappings)
	d.Users = orEmpty(d.Users)
	return d
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
