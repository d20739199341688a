// Package seed holds the fixed demonstration dataset used whenever a persisted
// snapshot is missing or a field of it cannot be read.
package seed

import (
	"strconv"
	"time"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/domain"
	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

var seedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ProgramTypes is the catalog offered when creating a project. Custom values are allowed.
var ProgramTypes = []string{
	"Remote Sensing",
	"Communication",
	"Scientific",
	"Safety Critical",
}

// Default returns a fresh copy of the seed dataset. Progress and mappings start empty.
func Default() state.Data {
	return state.Data{
		Projects:                 Projects(),
		Subsystems:               Subsystems(),
		Activities:               Activities(),
		Progress:                 []domain.ProjectProgress{},
		ProjectSubsystemMappings: []domain.ProjectSubsystemMapping{},
		Users:                    Users(),
	}
}

// Users are the demo accounts with their known credentials.
func Users() []domain.User {
	return []domain.User{
		{ID: "1", Username: "admin", Password: "admin123", Role: domain.RoleAdmin, CreatedAt: at(seedTime)},
		{ID: "2", Username: "pm1", Password: "pm123", Role: domain.RolePM, CreatedAt: at(seedTime)},
		{ID: "3", Username: "dpd1", Password: "dpd123", Role: domain.RoleDPD, CreatedAt: at(seedTime)},
		{ID: "4", Username: "eng1", Password: "eng123", Role: domain.RoleEngineer, CreatedAt: at(seedTime)},
	}
}

func Projects() []domain.Project {
	return []domain.Project{
		{ID: "proj-1", Name: "Satellite Communication System", ProgramType: "Communication", CreatedBy: "2", CreatedAt: day(2024, 1, 15)},
		{ID: "proj-2", Name: "Earth Observation Mission", ProgramType: "Remote Sensing", CreatedBy: "3", CreatedAt: day(2024, 2, 1)},
		{ID: "proj-3", Name: "Space Weather Monitoring", ProgramType: "Scientific", CreatedBy: "2", CreatedAt: day(2024, 2, 15)},
	}
}

func Subsystems() []domain.Subsystem {
	names := []string{"POWER", "TM", "TC", "AOCE", "OBC"}
	out := make([]domain.Subsystem, 0, len(names))
	for i, n := range names {
		out = append(out, domain.Subsystem{ID: strconv.Itoa(i + 1), Name: n, CreatedAt: at(seedTime)})
	}
	return out
}

// Activities concatenates the four catalogs in the order FPGA project, FPGA subsystem,
// processor project, processor subsystem.
func Activities() []domain.Activity {
	var out []domain.Activity
	out = append(out, FPGAProjectActivities()...)
	out = append(out, FPGASubsystemActivities()...)
	out = append(out, ProcessorProjectActivities()...)
	out = append(out, ProcessorSubsystemActivities()...)
	return out
}

func FPGAProjectActivities() []domain.Activity {
	return catalog("fpga-proj-", domain.ActivityFPGA, domain.AssociatedWithProject,
		"PDR", "CDR")
}

func FPGASubsystemActivities() []domain.Activity {
	return catalog("fpga-sub-", domain.ActivityFPGA, domain.AssociatedWithSubsystem,
		"FRR", "SRR", "SDR", "CI", "DB", "SILS",
		"Designer Level Test Case Audit",
		"Configuration Review Board",
		"Clearance for PROM fusing")
}

func ProcessorProjectActivities() []domain.Activity {
	return catalog("proc-proj-", domain.ActivityProcessor, domain.AssociatedWithProject,
		"PDR", "CDR", "Standing Review Committee", "IPAB Review", "PSR")
}

func ProcessorSubsystemActivities() []domain.Activity {
	return catalog("proc-sub-", domain.ActivityProcessor, domain.AssociatedWithSubsystem,
		"FRS", "FDR", "CI", "DB",
		"Simulation Result Audit",
		"Synthesis Log Check",
		"Static Timing Analysis",
		"Place and Roots Log Check",
		"Post Layout Simulation Audit",
		"CMRB")
}

// CatalogFor returns the seed catalog for one type/association pair.
func CatalogFor(t domain.ActivityType, a domain.Association) []domain.Activity {
	switch {
	case t == domain.ActivityFPGA && a == domain.AssociatedWithProject:
		return FPGAProjectActivities()
	case t == domain.ActivityFPGA && a == domain.AssociatedWithSubsystem:
		return FPGASubsystemActivities()
	case t == domain.ActivityProcessor && a == domain.AssociatedWithProject:
		return ProcessorProjectActivities()
	case t == domain.ActivityProcessor && a == domain.AssociatedWithSubsystem:
		return ProcessorSubsystemActivities()
	}
	return nil
}

// DemoProgress is sample progress with dates, used to populate the timeline in demos.
func DemoProgress() []domain.ProjectProgress {
	return []domain.ProjectProgress{
		completed("proj-1", "1", "fpga-proj-1", day(2024, 1, 15), day(2024, 1, 25)),
		completed("proj-1", "1", "fpga-proj-2", day(2024, 1, 26), day(2024, 2, 10)),
		completed("proj-2", "2", "fpga-sub-1", day(2024, 2, 1), day(2024, 2, 8)),
		completed("proj-2", "2", "fpga-sub-2", day(2024, 2, 9), day(2024, 2, 20)),
		completed("proj-3", "3", "proc-proj-1", day(2024, 2, 15), day(2024, 3, 1)),
		{
			ProjectID: "proj-1", SubsystemID: "1", ActivityID: "fpga-sub-3", UserID: "4",
			Status: domain.StatusInProgress, StartDate: at(day(2024, 2, 25)),
		},
	}
}

// DemoMappings assigns the subsystems used by DemoProgress.
func DemoMappings() []domain.ProjectSubsystemMapping {
	return []domain.ProjectSubsystemMapping{
		{ProjectID: "proj-1", SubsystemID: "1", AssignedBy: "2", CreatedAt: at(day(2024, 1, 15))},
		{ProjectID: "proj-2", SubsystemID: "2", AssignedBy: "3", CreatedAt: at(day(2024, 2, 1))},
		{ProjectID: "proj-3", SubsystemID: "3", AssignedBy: "2", CreatedAt: at(day(2024, 2, 15))},
	}
}

func completed(projectID, subsystemID, activityID string, start, end time.Time) domain.ProjectProgress {
	return domain.ProjectProgress{
		ProjectID:      projectID,
		SubsystemID:    subsystemID,
		ActivityID:     activityID,
		UserID:         "4",
		Status:         domain.StatusCompleted,
		StartDate:      at(start),
		CompletionDate: at(end),
	}
}

func catalog(prefix string, t domain.ActivityType, a domain.Association, names ...string) []domain.Activity {
	out := make([]domain.Activity, 0, len(names))
	for i, n := range names {
		out = append(out, domain.Activity{
			ID:             prefix + strconv.Itoa(i+1),
			Name:           n,
			Type:           t,
			AssociatedWith: a,
			CreatedAt:      at(seedTime),
		})
	}
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(t time.Time) *time.Time { return &t }
