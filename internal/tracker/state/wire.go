package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
)

var ErrUnknownAction = errors.New("unknown action type")

// Envelope is the JSON form of an action: {"type": "...", "payload": ...}.
// Delete actions carry the id as a JSON string payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParseAction decodes an envelope into its typed action.
func ParseAction(env Envelope) (Action, error) {
	switch env.Type {
	case TypeLogin:
		var u domain.User
		if err := decode(env, &u); err != nil {
			return nil, err
		}
		return Login{User: u}, nil
	case TypeLogout:
		return Logout{}, nil
	case TypeAddProject:
		var p domain.Project
		if err := decode(env, &p); err != nil {
			return nil, err
		}
		return AddProject{Project: p}, nil
	case TypeUpdateProject:
		var p domain.Project
		if err := decode(env, &p); err != nil {
			return nil, err
		}
		return UpdateProject{Project: p}, nil
	case TypeDeleteProject:
		id, err := decodeID(env)
		if err != nil {
			return nil, err
		}
		return DeleteProject{ID: id}, nil
	case TypeAddSubsystem:
		var sub domain.Subsystem
		if err := decode(env, &sub); err != nil {
			return nil, err
		}
		return AddSubsystem{Subsystem: sub}, nil
	case TypeUpdateSubsystem:
		var sub domain.Subsystem
		if err := decode(env, &sub); err != nil {
			return nil, err
		}
		return UpdateSubsystem{Subsystem: sub}, nil
	case TypeDeleteSubsystem:
		id, err := decodeID(env)
		if err != nil {
			return nil, err
		}
		return DeleteSubsystem{ID: id}, nil
	case TypeAddActivity:
		var act domain.Activity
		if err := decode(env, &act); err != nil {
			return nil, err
		}
		return AddActivity{Activity: act}, nil
	case TypeUpdateActivity:
		var act domain.Activity
		if err := decode(env, &act); err != nil {
			return nil, err
		}
		return UpdateActivity{Activity: act}, nil
	case TypeDeleteActivity:
		id, err := decodeID(env)
		if err != nil {
			return nil, err
		}
		return DeleteActivity{ID: id}, nil
	case TypeUpdateProgress:
		var p domain.ProjectProgress
		if err := decode(env, &p); err != nil {
			return nil, err
		}
		return UpdateProgress{Progress: p}, nil
	case TypeAddUser:
		var u domain.User
		if err := decode(env, &u); err != nil {
			return nil, err
		}
		return AddUser{User: u}, nil
	case TypeUpdateUser:
		var u domain.User
		if err := decode(env, &u); err != nil {
			return nil, err
		}
		return UpdateUser{User: u}, nil
	case TypeDeleteUser:
		id, err := decodeID(env)
		if err != nil {
			return nil, err
		}
		return DeleteUser{ID: id}, nil
	case TypeMapSubsystemToProject:
		var m domain.ProjectSubsystemMapping
		if err := decode(env, &m); err != nil {
			return nil, err
		}
		return MapSubsystemToProject{Mapping: m}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
}

func decode(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%s: payload required", env.Type)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%s: decode payload: %w", env.Type, err)
	}
	return nil
}

func decodeID(env Envelope) (string, error) {
	var id string
	if err := decode(env, &id); err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%s: id required", env.Type)
	}
	return id, nil
}
