package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/seed"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

func TestEncode_HasExactlySixKeys(t *testing.T) {
	blob, err := Encode(state.Data{})
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(blob, &m))
	assert.Len(t, m, 6)
	for _, f := range Fields {
		assert.Equal(t, "[]", string(m[f]), f)
	}
}

func TestEncodeDecode_DatesAsISO8601(t *testing.T) {
	done := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	d := seed.Default()
	d.Progress = []domain.ProjectProgress{{
		ProjectID: "proj-1", SubsystemID: "1", ActivityID: "fpga-proj-1", UserID: "4",
		Status: domain.StatusCompleted, CompletionDate: &done,
	}}

	blob, err := Encode(d)
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"completionDate":"2024-03-10T00:00:00Z"`)

	got, rep := Decode(blob, seed.Default())
	assert.True(t, rep.Complete())
	require.Len(t, got.Progress, 1)
	assert.True(t, done.Equal(*got.Progress[0].CompletionDate))
	assert.Equal(t, d.Users, got.Users)
}

func TestDecode_EmptyBlobFallsBackToSeed(t *testing.T) {
	got, rep := Decode(nil, seed.Default())
	assert.Equal(t, seed.Default(), got)
	assert.Len(t, rep.Fallbacks, 6)
}

func TestDecode_CorruptBlobFallsBackToSeed(t *testing.T) {
	for _, blob := range []string{"{not json", "[]", "null", `"text"`} {
		got, rep := Decode([]byte(blob), seed.Default())
		assert.Equal(t, seed.Default(), got, blob)
		assert.False(t, rep.Complete(), blob)
	}
}

func TestDecode_PartialBlob(t *testing.T) {
	blob := `{"users":[{"id":"9","username":"solo","password":"pw1234","role":"PM"}]}`

	got, rep := Decode([]byte(blob), seed.Default())

	require.Len(t, got.Users, 1)
	assert.Equal(t, "solo", got.Users[0].Username)
	assert.Equal(t, seed.Projects(), got.Projects)
	assert.Equal(t, seed.Activities(), got.Activities)
	assert.Equal(t, []string{FieldUsers}, rep.Restored)
	assert.Len(t, rep.Fallbacks, 5)
}

func TestDecode_MalformedFieldFallsBackAlone(t *testing.T) {
	blob := `{"projects":"oops","subsystems":[],"progress":null}`

	got, rep := Decode([]byte(blob), seed.Default())

	assert.Equal(t, seed.Projects(), got.Projects)
	assert.NotNil(t, got.Subsystems)
	assert.Empty(t, got.Subsystems)
	assert.Contains(t, rep.Fallbacks, FieldProjects)
	assert.Equal(t, "missing", rep.Fallbacks[FieldProgress])
}
