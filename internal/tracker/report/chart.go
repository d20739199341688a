package report

import (
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

type ChartKind string

const (
	ChartPie ChartKind = "pie"
	ChartBar ChartKind = "bar"
)

const (
	SeriesCompletionPercentage = "Completion Percentage"
	SeriesCompletedCount       = "Completed"
)

type Point struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Unknown bool    `json:"unknown,omitempty"`
}

type Chart struct {
	Kind        ChartKind `json:"kind"`
	Title       string    `json:"title"`
	SeriesLabel string    `json:"seriesLabel"`
	Points      []Point   `json:"points"`
}

// axis describes the primary dimension of a chart: projects or subsystems.
type axis struct {
	ids       []string
	name      func(state.State, string) (string, bool)
	matches   func(domain.ProjectProgress, string) bool
	barTitle  string
	pieSuffix string
}

// ProjectActivity charts completion of the selected activities per selected project.
func ProjectActivity(s state.State, f Filter) Chart {
	f = f.Resolve(s)
	return build(s, axis{
		ids:       f.ProjectIDs,
		name:      projectName,
		matches:   func(p domain.ProjectProgress, id string) bool { return p.ProjectID == id },
		barTitle:  "Project vs Activity Progress",
		pieSuffix: " - Project Progress",
	}, f.ActivityIDs)
}

// SubsystemActivity charts completion of the selected activities per selected subsystem.
func SubsystemActivity(s state.State, f Filter) Chart {
	f = f.Resolve(s)
	return build(s, axis{
		ids:       f.SubsystemIDs,
		name:      subsystemName,
		matches:   func(p domain.ProjectProgress, id string) bool { return p.SubsystemID == id },
		barTitle:  "Subsystem vs Activity Progress",
		pieSuffix: " - Subsystem Progress",
	}, f.ActivityIDs)
}

// build picks the chart shape. One entity against several activities is a pie
// over activities; several entities against one activity is a pie over
// entities; anything else is a bar of completion percentages.
func build(s state.State, ax axis, activities []string) Chart {
	switch {
	case len(ax.ids) == 1 && len(activities) > 1:
		entity := ax.ids[0]
		name, _ := ax.name(s, entity)
		points := make([]Point, 0, len(activities))
		for _, aid := range activities {
			lbl, unknown := activityName(s, aid)
			points = append(points, Point{
				ID:      aid,
				Label:   lbl,
				Value:   float64(countCompleted(s, ax, entity, aid)),
				Unknown: unknown,
			})
		}
		return Chart{Kind: ChartPie, Title: name + " - Activity Progress", SeriesLabel: SeriesCompletedCount, Points: points}

	case len(ax.ids) > 1 && len(activities) == 1:
		aid := activities[0]
		name, _ := activityName(s, aid)
		points := make([]Point, 0, len(ax.ids))
		for _, id := range ax.ids {
			lbl, unknown := ax.name(s, id)
			points = append(points, Point{
				ID:      id,
				Label:   lbl,
				Value:   float64(countCompleted(s, ax, id, aid)),
				Unknown: unknown,
			})
		}
		return Chart{Kind: ChartPie, Title: name + ax.pieSuffix, SeriesLabel: SeriesCompletedCount, Points: points}
	}

	points := make([]Point, 0, len(ax.ids))
	for _, id := range ax.ids {
		lbl, unknown := ax.name(s, id)
		points = append(points, Point{
			ID:      id,
			Label:   lbl,
			Value:   completionPercentage(s, ax, id, activities),
			Unknown: unknown,
		})
	}
	return Chart{Kind: ChartBar, Title: ax.barTitle, SeriesLabel: SeriesCompletionPercentage, Points: points}
}

// countCompleted counts COMPLETED records, so several users completing the same
// activity each count once.
func countCompleted(s state.State, ax axis, entity, activityID string) int {
	n := 0
	for _, p := range s.Progress {
		if completed(p) && ax.matches(p, entity) && p.ActivityID == activityID {
			n++
		}
	}
	return n
}

// completionPercentage is the share of activities with at least one COMPLETED
// record for entity. No activities yields 0.
func completionPercentage(s state.State, ax axis, entity string, activities []string) float64 {
	if len(activities) == 0 {
		return 0
	}
	done := 0
	for _, aid := range activities {
		for _, p := range s.Progress {
			if completed(p) && ax.matches(p, entity) && p.ActivityID == aid {
				done++
				break
			}
		}
	}
	return float64(done) / float64(len(activities)) * 100
}
