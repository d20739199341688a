package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
)

func TestDefault_Catalogs(t *testing.T) {
	data := Default()

	assert.Len(t, data.Users, 4)
	assert.Len(t, data.Projects, 3)
	assert.Len(t, data.Subsystems, 5)
	assert.Len(t, data.Activities, 2+9+5+10)
	assert.Empty(t, data.Progress)
	assert.Empty(t, data.ProjectSubsystemMappings)

	assert.Equal(t, "fpga-sub-9", FPGASubsystemActivities()[8].ID)
	assert.Equal(t, "CMRB", ProcessorSubsystemActivities()[9].Name)
	assert.Equal(t, "5", data.Subsystems[4].ID)
	assert.Equal(t, "OBC", data.Subsystems[4].Name)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Users[0].Username = "changed"

	b := Default()
	assert.Equal(t, "admin", b.Users[0].Username)
	assert.Equal(t, a.Projects, b.Projects)
}

func TestCatalogFor(t *testing.T) {
	got := CatalogFor(domain.ActivityProcessor, domain.AssociatedWithProject)
	require.Len(t, got, 5)
	assert.Equal(t, "IPAB Review", got[3].Name)
	assert.Nil(t, CatalogFor("ASIC", domain.AssociatedWithProject))
}

func TestBuild_DemoProgress(t *testing.T) {
	data, err := Build(Options{DemoProgress: true})
	require.NoError(t, err)
	assert.Len(t, data.Progress, 6)
	assert.Len(t, data.ProjectSubsystemMappings, 3)
}

func TestBuild_FileOverridesOnlyListedCollections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.yaml")
	doc := `
users:
  - id: u1
    username: lead
    password: secret1
    role: PM
subsystems: []
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	data, err := Build(Options{File: path})
	require.NoError(t, err)

	require.Len(t, data.Users, 1)
	assert.Equal(t, domain.RolePM, data.Users[0].Role)
	assert.Empty(t, data.Subsystems)
	assert.Len(t, data.Projects, 3)
}

func TestBuild_MissingFile(t *testing.T) {
	_, err := Build(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}
