// Package config loads task sets and run options from YAML: defaults
// first, then an optional file overriding them, then sanity clamps.
package config

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"github.com/rtsched/tickrts/internal/rtsim"
)

// TaskConfig is one task-set entry as it appears in YAML.
type TaskConfig struct {
	ID            int64  `yaml:"id"`
	Period        int64  `yaml:"period"`
	WCET          int64  `yaml:"wcet"`
	Deadline      int64  `yaml:"deadline"`
	InitialOffset int64  `yaml:"initial_offset"`
	Sporadic      bool   `yaml:"sporadic"`
	Name          string `yaml:"name"`
}

// RunOptions mirrors rtsim.RunOptions plus the knobs needed to build a
// VariationOracle from YAML.
type RunOptions struct {
	RunTimeVariation       bool    `yaml:"run_time_variation"`
	GenIdleTimeEvents      bool    `yaml:"gen_idle_time_events"`
	AssertOnDeadlineMiss   bool    `yaml:"assert_on_deadline_miss"`
	TraceEnabled           bool    `yaml:"trace_enabled"`
	RandomSeed             int64   `yaml:"random_seed"`
	InterArrivalCeilFactor float64 `yaml:"inter_arrival_ceil_factor"`
}

// ToSimOptions converts the YAML-facing options into rtsim.RunOptions.
func (o RunOptions) ToSimOptions() rtsim.RunOptions {
	return rtsim.RunOptions{
		RunTimeVariation:     o.RunTimeVariation,
		GenIdleTimeEvents:    o.GenIdleTimeEvents,
		AssertOnDeadlineMiss: o.AssertOnDeadlineMiss,
		TraceEnabled:         o.TraceEnabled,
	}
}

// File is the root YAML document: run options plus a task set.
type File struct {
	Options RunOptions   `yaml:"options"`
	Tasks   []TaskConfig `yaml:"tasks"`
}

// yamlOptions mirrors RunOptions for unmarshaling only, using a pointer
// for RandomSeed so an explicit `random_seed: 0` in the file (a valid
// math/rand seed) can be told apart from the field being absent, which a
// plain int64 cannot: both decode to the zero value.
type yamlOptions struct {
	RunTimeVariation       bool    `yaml:"run_time_variation"`
	GenIdleTimeEvents      bool    `yaml:"gen_idle_time_events"`
	AssertOnDeadlineMiss   bool    `yaml:"assert_on_deadline_miss"`
	TraceEnabled           bool    `yaml:"trace_enabled"`
	RandomSeed             *int64  `yaml:"random_seed"`
	InterArrivalCeilFactor float64 `yaml:"inter_arrival_ceil_factor"`
}

type yamlFile struct {
	Options yamlOptions  `yaml:"options"`
	Tasks   []TaskConfig `yaml:"tasks"`
}

func defaultRunOptions() RunOptions {
	return RunOptions{
		GenIdleTimeEvents:      true,
		AssertOnDeadlineMiss:   true,
		RandomSeed:             1,
		InterArrivalCeilFactor: 2.0,
	}
}

// Load reads a YAML task-set/options file. An empty path, or one that does
// not exist, returns defaults (an empty task set and DefaultRunOptions-
// equivalent options) rather than an error. A file that exists but fails
// to parse returns a wrapped error instead of being silently swallowed: a
// malformed task set silently simulating zero tasks is a correctness trap
// (see DESIGN.md).
func Load(path string) (File, error) {
	defaults := defaultRunOptions()

	if path == "" {
		return File{Options: defaults}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{Options: defaults}, nil
		}
		return File{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	raw := yamlFile{Options: yamlOptions{
		GenIdleTimeEvents:      defaults.GenIdleTimeEvents,
		AssertOnDeadlineMiss:   defaults.AssertOnDeadlineMiss,
		InterArrivalCeilFactor: defaults.InterArrivalCeilFactor,
	}}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	file := File{
		Options: RunOptions{
			RunTimeVariation:       raw.Options.RunTimeVariation,
			GenIdleTimeEvents:      raw.Options.GenIdleTimeEvents,
			AssertOnDeadlineMiss:   raw.Options.AssertOnDeadlineMiss,
			TraceEnabled:           raw.Options.TraceEnabled,
			InterArrivalCeilFactor: raw.Options.InterArrivalCeilFactor,
			RandomSeed:             defaults.RandomSeed,
		},
		Tasks: raw.Tasks,
	}
	if raw.Options.RandomSeed != nil {
		file.Options.RandomSeed = *raw.Options.RandomSeed
	}

	if file.Options.InterArrivalCeilFactor < 1 {
		file.Options.InterArrivalCeilFactor = defaults.InterArrivalCeilFactor
	}

	return file, nil
}

// BuildTasks constructs the rtsim.Task set described by the file.
func (f File) BuildTasks() ([]*rtsim.Task, error) {
	tasks := make([]*rtsim.Task, 0, len(f.Tasks))
	for _, tc := range f.Tasks {
		t, err := rtsim.NewTask(rtsim.TaskSpec{
			ID:            rtsim.TaskID(tc.ID),
			Period:        tc.Period,
			WCET:          tc.WCET,
			Deadline:      tc.Deadline,
			InitialOffset: tc.InitialOffset,
			Sporadic:      tc.Sporadic,
		})
		if err != nil {
			return nil, fmt.Errorf("config: task %d (%s): %w", tc.ID, tc.Name, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
