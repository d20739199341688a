package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/qatrack-backend/internal/tracker/state"
)

// Options tunes the dataset returned by Build.
type Options struct {
	// File is an optional YAML document with any of the six collections.
	// Collections it omits keep the built-in values.
	File string
	// DemoProgress adds sample progress and mappings for the timeline.
	DemoProgress bool
}

// Build returns the seed dataset after applying opts.
func Build(opts Options) (state.Data, error) {
	data := Default()
	if opts.DemoProgress {
		data.Progress = DemoProgress()
		data.ProjectSubsystemMappings = DemoMappings()
	}
	if opts.File == "" {
		return data, nil
	}

	raw, err := os.ReadFile(opts.File)
	if err != nil {
		return state.Data{}, fmt.Errorf("read seed file: %w", err)
	}
	var override state.Data
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return state.Data{}, fmt.Errorf("parse seed file %s: %w", opts.File, err)
	}
	return merge(data, override), nil
}

func merge(base, override state.Data) state.Data {
	if override.Projects != nil {
		base.Projects = override.Projects
	}
	if override.Subsystems != nil {
		base.Subsystems = override.Subsystems
	}
	if override.Activities != nil {
		base.Activities = override.Activities
	}
	if override.Progress != nil {
		base.Progress = override.Progress
	}
	if override.ProjectSubsystemMappings != nil {
		base.ProjectSubsystemMappings = override.ProjectSubsystemMappings
	}
	if override.Users != nil {
		base.Users = override.Users
	}
	return base
}
