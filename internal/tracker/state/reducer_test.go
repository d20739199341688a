package state

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
)

func baseState() State {
	return New(Data{
		Projects: []domain.Project{
			{ID: "p1", Name: "Alpha", ProgramType: "Scientific", CreatedBy: "2"},
			{ID: "p2", Name: "Beta", ProgramType: "Communication", CreatedBy: "3"},
		},
		Subsystems: []domain.Subsystem{{ID: "s1", Name: "POWER"}},
		Activities: []domain.Activity{{ID: "a1", Name: "PDR", Type: domain.ActivityFPGA, AssociatedWith: domain.AssociatedWithProject}},
		Users:      []domain.User{{ID: "u1", Username: "eng1", Password: "eng123", Role: domain.RoleEngineer}},
	})
}

func progress(status domain.Status) domain.ProjectProgress {
	return domain.ProjectProgress{ProjectID: "p1", SubsystemID: "s1", ActivityID: "a1", UserID: "u1", Status: status}
}

func TestReduce_LoginLogout(t *testing.T) {
	s := baseState()
	u := s.Users[0]

	in := Reduce(s, Login{User: u})
	require.NotNil(t, in.Auth.User)
	assert.True(t, in.Auth.IsAuthenticated)
	assert.Equal(t, "eng1", in.Auth.User.Username)
	assert.False(t, s.Auth.IsAuthenticated, "prior state must not change")

	out := Reduce(in, Logout{})
	assert.Nil(t, out.Auth.User)
	assert.False(t, out.Auth.IsAuthenticated)
}

func TestReduce_ProjectCRUD(t *testing.T) {
	s := baseState()

	added := Reduce(s, AddProject{Project: domain.Project{ID: "p3", Name: "Gamma"}})
	require.Len(t, added.Projects, 3)
	assert.Equal(t, "p3", added.Projects[2].ID)
	assert.Len(t, s.Projects, 2)

	updated := Reduce(added, UpdateProject{Project: domain.Project{ID: "p1", Name: "Alpha II"}})
	assert.Equal(t, "Alpha II", updated.Projects[0].Name)
	assert.Equal(t, "Alpha", added.Projects[0].Name)

	deleted := Reduce(updated, DeleteProject{ID: "p2"})
	require.Len(t, deleted.Projects, 2)
	assert.Equal(t, []string{"p1", "p3"}, []string{deleted.Projects[0].ID, deleted.Projects[1].ID})
}

func TestReduce_UpdateUnknownIDIsNoop(t *testing.T) {
	s := baseState()
	next := Reduce(s, UpdateSubsystem{Subsystem: domain.Subsystem{ID: "missing", Name: "X"}})
	assert.Equal(t, s.Subsystems, next.Subsystems)
}

func TestReduce_DeleteLeavesDanglingReferences(t *testing.T) {
	s := Reduce(baseState(), UpdateProgress{Progress: progress(domain.StatusNotStarted)})
	next := Reduce(s, DeleteActivity{ID: "a1"})
	assert.Empty(t, next.Activities)
	assert.Len(t, next.Progress, 1)
}

func TestReduce_AddDoesNotShareBackingArray(t *testing.T) {
	s := baseState()
	s.Users = make([]domain.User, 1, 8)
	s.Users[0] = domain.User{ID: "u1"}

	a := Reduce(s, AddUser{User: domain.User{ID: "u2"}})
	b := Reduce(s, AddUser{User: domain.User{ID: "u3"}})
	assert.Equal(t, "u2", a.Users[1].ID)
	assert.Equal(t, "u3", b.Users[1].ID)
}

func TestReduce_UpdateProgressIdempotent(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	action := UpdateProgress{Progress: progress(domain.StatusInProgress), At: at}

	once := Reduce(baseState(), action)
	twice := Reduce(once, UpdateProgress{Progress: progress(domain.StatusInProgress), At: at.Add(time.Hour)})

	assert.Equal(t, once.Progress, twice.Progress)
}

func TestReduce_UpdateProgressUniqueness(t *testing.T) {
	s := baseState()
	statuses := []domain.Status{domain.StatusNotStarted, domain.StatusInProgress, domain.StatusCompleted, domain.StatusNotStarted}
	for _, st := range statuses {
		s = Reduce(s, UpdateProgress{Progress: progress(st)})
	}
	other := progress(domain.StatusInProgress)
	other.UserID = "u2"
	s = Reduce(s, UpdateProgress{Progress: other})

	seen := map[domain.ProgressKey]int{}
	for _, p := range s.Progress {
		seen[p.Key()]++
	}
	assert.Len(t, s.Progress, 2)
	for k, n := range seen {
		assert.Equal(t, 1, n, k)
	}
	assert.Equal(t, domain.StatusNotStarted, s.Progress[0].Status)
}

func TestReduce_UpdateProgressAutoStamps(t *testing.T) {
	started := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	done := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	s := Reduce(baseState(), UpdateProgress{Progress: progress(domain.StatusInProgress), At: started})
	require.NotNil(t, s.Progress[0].StartDate)
	assert.Equal(t, started, *s.Progress[0].StartDate)
	assert.Nil(t, s.Progress[0].CompletionDate)

	s = Reduce(s, UpdateProgress{Progress: progress(domain.StatusCompleted), At: done})
	require.NotNil(t, s.Progress[0].StartDate)
	assert.Equal(t, started, *s.Progress[0].StartDate)
	require.NotNil(t, s.Progress[0].CompletionDate)
	assert.Equal(t, done, *s.Progress[0].CompletionDate)

	// regression keeps both dates
	s = Reduce(s, UpdateProgress{Progress: progress(domain.StatusNotStarted), At: done.Add(time.Hour)})
	assert.Equal(t, domain.StatusNotStarted, s.Progress[0].Status)
	assert.Equal(t, started, *s.Progress[0].StartDate)
	assert.Equal(t, done, *s.Progress[0].CompletionDate)
}

func TestReduce_UpdateProgressKeepsExplicitDates(t *testing.T) {
	explicit := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	p := progress(domain.StatusInProgress)
	p.StartDate = &explicit

	s := Reduce(baseState(), UpdateProgress{Progress: p, At: time.Now()})
	assert.Equal(t, explicit, *s.Progress[0].StartDate)
}

func TestReduce_CompletedWithoutStartLeavesStartEmpty(t *testing.T) {
	s := Reduce(baseState(), UpdateProgress{Progress: progress(domain.StatusCompleted)})
	assert.Nil(t, s.Progress[0].StartDate)
	assert.NotNil(t, s.Progress[0].CompletionDate)
}

func TestReduce_MapSubsystemReplacesNotAppends(t *testing.T) {
	s := baseState()
	s = Reduce(s, MapSubsystemToProject{Mapping: domain.ProjectSubsystemMapping{ProjectID: "p1", SubsystemID: "s1"}})
	s = Reduce(s, MapSubsystemToProject{Mapping: domain.ProjectSubsystemMapping{ProjectID: "p2", SubsystemID: "s1"}})
	s = Reduce(s, MapSubsystemToProject{Mapping: domain.ProjectSubsystemMapping{ProjectID: "p1", SubsystemID: "s2"}})

	var forP1 []domain.ProjectSubsystemMapping
	for _, m := range s.ProjectSubsystemMappings {
		if m.ProjectID == "p1" {
			forP1 = append(forP1, m)
		}
	}
	require.Len(t, forP1, 1)
	assert.Equal(t, "s2", forP1[0].SubsystemID)
	assert.Len(t, s.ProjectSubsystemMappings, 2)
}

func TestReduce_NilActionReturnsPrior(t *testing.T) {
	s := baseState()
	assert.Equal(t, s, Reduce(s, nil))
}

func TestAction_Persists(t *testing.T) {
	assert.False(t, Login{}.Persists())
	assert.False(t, Logout{}.Persists())
	assert.True(t, AddProject{}.Persists())
	assert.True(t, UpdateProgress{}.Persists())
	assert.True(t, MapSubsystemToProject{}.Persists())
}

func TestParseAction(t *testing.T) {
	t.Run("delete carries id string", func(t *testing.T) {
		a, err := ParseAction(Envelope{Type: TypeDeleteUser, Payload: json.RawMessage(`"u9"`)})
		require.NoError(t, err)
		assert.Equal(t, DeleteUser{ID: "u9"}, a)
	})

	t.Run("progress payload", func(t *testing.T) {
		raw := `{"projectId":"p1","subsystemId":"s1","activityId":"a1","userId":"u1","status":"COMPLETED","completionDate":"2024-03-10T00:00:00.000Z"}`
		a, err := ParseAction(Envelope{Type: TypeUpdateProgress, Payload: json.RawMessage(raw)})
		require.NoError(t, err)
		up, ok := a.(UpdateProgress)
		require.True(t, ok)
		assert.Equal(t, domain.StatusCompleted, up.Progress.Status)
		require.NotNil(t, up.Progress.CompletionDate)
		assert.Equal(t, 10, up.Progress.CompletionDate.Day())
	})

	t.Run("logout needs no payload", func(t *testing.T) {
		a, err := ParseAction(Envelope{Type: TypeLogout})
		require.NoError(t, err)
		assert.Equal(t, TypeLogout, a.Type())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := ParseAction(Envelope{Type: "RESET_EVERYTHING"})
		assert.True(t, errors.Is(err, ErrUnknownAction))
	})

	t.Run("missing payload", func(t *testing.T) {
		_, err := ParseAction(Envelope{Type: TypeAddProject})
		assert.Error(t, err)
	})
}
