package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	file, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, file.Tasks)
	assert.True(t, file.Options.GenIdleTimeEvents)
	assert.True(t, file.Options.AssertOnDeadlineMiss)
	assert.Equal(t, 2.0, file.Options.InterArrivalCeilFactor)
}

func TestLoadWithMissingFileReturnsDefaults(t *testing.T) {
	file, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Empty(t, file.Tasks)
}

func TestLoadParsesTasksAndOverridesOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskset.yaml")
	contents := `
options:
  run_time_variation: true
  gen_idle_time_events: false
  assert_on_deadline_miss: false
  trace_enabled: true
  random_seed: 7
  inter_arrival_ceil_factor: 3.5
tasks:
  - id: 1
    period: 10
    wcet: 3
    name: A
  - id: 2
    period: 20
    wcet: 5
    deadline: 15
    initial_offset: 2
    sporadic: true
    name: B
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	file, err := Load(path)
	require.NoError(t, err)

	require.Len(t, file.Tasks, 2)
	assert.Equal(t, int64(1), file.Tasks[0].ID)
	assert.Equal(t, int64(15), file.Tasks[1].Deadline)
	assert.True(t, file.Tasks[1].Sporadic)

	assert.True(t, file.Options.RunTimeVariation)
	assert.False(t, file.Options.GenIdleTimeEvents)
	assert.Equal(t, int64(7), file.Options.RandomSeed)
	assert.Equal(t, 3.5, file.Options.InterArrivalCeilFactor)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks: [this is not valid: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadClampsSubUnityCeilFactor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskset.yaml")
	contents := `
options:
  inter_arrival_ceil_factor: 0.1
tasks: []
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, file.Options.InterArrivalCeilFactor)
}

func TestLoadDefaultsRandomSeedWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskset.yaml")
	contents := `
options:
  inter_arrival_ceil_factor: 2.0
tasks: []
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), file.Options.RandomSeed)
}

func TestLoadHonorsExplicitZeroRandomSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskset.yaml")
	contents := `
options:
  random_seed: 0
tasks: []
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), file.Options.RandomSeed)
}

func TestBuildTasksPropagatesTaskValidationErrors(t *testing.T) {
	file := File{Tasks: []TaskConfig{{ID: 1, Period: 0, WCET: 3}}}
	_, err := file.BuildTasks()
	assert.Error(t, err)
}

func TestBuildTasksConstructsValidTasks(t *testing.T) {
	file := File{Tasks: []TaskConfig{{ID: 1, Period: 10, WCET: 3}}}
	tasks, err := file.BuildTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(10), tasks[0].Deadline)
}
