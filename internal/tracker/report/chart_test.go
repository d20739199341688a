package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

func fixture() state.State {
	return state.New(state.Data{
		Projects: []domain.Project{
			{ID: "A", Name: "Alpha"}, {ID: "B", Name: "Beta"}, {ID: "C", Name: "Gamma"},
		},
		Subsystems: []domain.Subsystem{{ID: "s1", Name: "POWER"}, {ID: "s2", Name: "TM"}},
		Activities: []domain.Activity{
			{ID: "a1", Name: "PDR"}, {ID: "a2", Name: "CDR"}, {ID: "a3", Name: "FRR"}, {ID: "a4", Name: "SRR"},
		},
	})
}

func done(project, subsystem, activity, user string) domain.ProjectProgress {
	return domain.ProjectProgress{
		ProjectID: project, SubsystemID: subsystem, ActivityID: activity, UserID: user,
		Status: domain.StatusCompleted,
	}
}

func values(c Chart) []float64 {
	out := make([]float64, 0, len(c.Points))
	for _, p := range c.Points {
		out = append(out, p.Value)
	}
	return out
}

func TestProjectActivity_BarPercentages(t *testing.T) {
	s := fixture()
	s.Progress = []domain.ProjectProgress{
		done("A", "s1", "a1", "u1"),
		done("A", "s1", "a2", "u1"),
		done("A", "s1", "a2", "u2"),
		{ProjectID: "B", SubsystemID: "s1", ActivityID: "a1", UserID: "u1", Status: domain.StatusInProgress},
		done("C", "s2", "a1", "u1"),
		done("C", "s2", "a2", "u1"),
		done("C", "s2", "a3", "u1"),
		done("C", "s2", "a4", "u1"),
	}

	c := ProjectActivity(s, Filter{
		ProjectIDs:  []string{"A", "B", "C"},
		ActivityIDs: []string{"a1", "a2", "a3", "a4"},
	})

	assert.Equal(t, ChartBar, c.Kind)
	assert.Equal(t, "Project vs Activity Progress", c.Title)
	assert.Equal(t, SeriesCompletionPercentage, c.SeriesLabel)
	assert.Equal(t, []float64{50, 0, 100}, values(c))
	assert.Equal(t, "Alpha", c.Points[0].Label)
}

func TestProjectActivity_NoActivitiesIsZero(t *testing.T) {
	s := fixture()
	s.Progress = []domain.ProjectProgress{done("A", "s1", "a1", "u1")}

	c := ProjectActivity(s, Filter{
		ProjectIDs:  []string{"A", "B", "C"},
		ActivityIDs: []string{},
	})

	assert.Equal(t, ChartBar, c.Kind)
	assert.Equal(t, []float64{0, 0, 0}, values(c))
}

func TestProjectActivity_PieOverActivities(t *testing.T) {
	s := fixture()
	s.Progress = []domain.ProjectProgress{
		done("A", "s1", "a1", "u1"),
		done("A", "s1", "a3", "u1"),
		done("A", "s2", "a3", "u2"),
		done("B", "s1", "a2", "u1"),
	}

	c := ProjectActivity(s, Filter{
		ProjectIDs:  []string{"A"},
		ActivityIDs: []string{"a1", "a2", "a3"},
	})

	assert.Equal(t, ChartPie, c.Kind)
	assert.Equal(t, "Alpha - Activity Progress", c.Title)
	assert.Equal(t, []float64{1, 0, 2}, values(c))
	assert.Equal(t, []string{"PDR", "CDR", "FRR"}, []string{c.Points[0].Label, c.Points[1].Label, c.Points[2].Label})
}

func TestProjectActivity_PieOverProjects(t *testing.T) {
	s := fixture()
	s.Progress = []domain.ProjectProgress{done("B", "s1", "a2", "u1")}

	c := ProjectActivity(s, Filter{
		ProjectIDs:  []string{"A", "B"},
		ActivityIDs: []string{"a2"},
	})

	assert.Equal(t, ChartPie, c.Kind)
	assert.Equal(t, "CDR - Project Progress", c.Title)
	assert.Equal(t, []float64{0, 1}, values(c))
}

func TestProjectActivity_OneToOneIsBar(t *testing.T) {
	s := fixture()
	s.Progress = []domain.ProjectProgress{done("A", "s1", "a1", "u1")}

	c := ProjectActivity(s, Filter{ProjectIDs: []string{"A"}, ActivityIDs: []string{"a1"}})

	assert.Equal(t, ChartBar, c.Kind)
	assert.Equal(t, []float64{100}, values(c))
}

func TestProjectActivity_NilSelectsAll(t *testing.T) {
	c := ProjectActivity(fixture(), Filter{})

	assert.Equal(t, ChartBar, c.Kind)
	assert.Len(t, c.Points, 3)
}

func TestProjectActivity_DanglingIDRendersUnknown(t *testing.T) {
	c := ProjectActivity(fixture(), Filter{ProjectIDs: []string{"A", "gone"}, ActivityIDs: []string{"a1", "a2"}})

	require.Len(t, c.Points, 2)
	assert.False(t, c.Points[0].Unknown)
	assert.True(t, c.Points[1].Unknown)
	assert.Equal(t, "Unknown", c.Points[1].Label)
}

func TestSubsystemActivity(t *testing.T) {
	s := fixture()
	s.Progress = []domain.ProjectProgress{
		done("A", "s1", "a1", "u1"),
		done("B", "s1", "a2", "u1"),
		done("A", "s2", "a1", "u1"),
	}

	t.Run("bar", func(t *testing.T) {
		c := SubsystemActivity(s, Filter{SubsystemIDs: []string{"s1", "s2"}, ActivityIDs: []string{"a1", "a2"}})
		assert.Equal(t, ChartBar, c.Kind)
		assert.Equal(t, "Subsystem vs Activity Progress", c.Title)
		assert.Equal(t, []float64{100, 50}, values(c))
	})

	t.Run("pie over subsystems", func(t *testing.T) {
		c := SubsystemActivity(s, Filter{SubsystemIDs: []string{"s1", "s2"}, ActivityIDs: []string{"a1"}})
		assert.Equal(t, ChartPie, c.Kind)
		assert.Equal(t, "PDR - Subsystem Progress", c.Title)
		assert.Equal(t, []float64{1, 1}, values(c))
	})

	t.Run("pie over activities", func(t *testing.T) {
		c := SubsystemActivity(s, Filter{SubsystemIDs: []string{"s1"}, ActivityIDs: []string{"a1", "a2", "a3"}})
		assert.Equal(t, "POWER - Activity Progress", c.Title)
		assert.Equal(t, []float64{1, 1, 0}, values(c))
	})
}
