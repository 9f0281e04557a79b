package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtsched/tickrts/internal/rtsim"
)

func sampleContainer(t *testing.T) *rtsim.EventContainer {
	t.Helper()
	task, err := rtsim.NewTask(rtsim.TaskSpec{ID: 1, Period: 10, WCET: 3})
	require.NoError(t, err)

	c := rtsim.NewEventContainer(rtsim.PolicyFixedPriority)
	c.Add(rtsim.SchedulerIntervalEvent{Begin: 0, End: 3, Task: task})
	c.Add(rtsim.SchedulerIntervalEvent{Begin: 3, End: 5, Task: rtsim.IdleTask})
	return c
}

func TestRenderRawExpandsEachEventIntoDurationCopiesOfTaskID(t *testing.T) {
	c := sampleContainer(t)
	got := RenderRaw(c)
	assert.Equal(t, "1, 1, 1, -1, -1", got)
}

func TestRenderRawOfEmptyContainerIsEmptyString(t *testing.T) {
	c := rtsim.NewEventContainer(rtsim.PolicyFixedPriority)
	assert.Equal(t, "", RenderRaw(c))
}

func TestWriteCSVWritesHeaderAndOneRowPerEvent(t *testing.T) {
	c := sampleContainer(t)

	var buf strings.Builder
	require.NoError(t, WriteCSV(c, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "begin,end,task_id,job_initial_release_time,begin_state,end_state,note,run_id", lines[0])

	row0 := strings.Split(lines[1], ",")
	require.Len(t, row0, 8)
	assert.Equal(t, []string{"0", "3", "1", "0", "Start", "End", ""}, row0[:7])
	assert.Equal(t, c.RunID, row0[7])

	row1 := strings.Split(lines[2], ",")
	require.Len(t, row1, 8)
	assert.Equal(t, []string{"3", "5", "-1", "0", "Start", "End", ""}, row1[:7])
	assert.Equal(t, c.RunID, row1[7])
}
