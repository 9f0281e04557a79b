package rtsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignPrioritiesRateMonotonicOrder(t *testing.T) {
	a := mustTask(t, TaskSpec{ID: 3, Period: 10, WCET: 1})
	b := mustTask(t, TaskSpec{ID: 2, Period: 20, WCET: 1})
	c := mustTask(t, TaskSpec{ID: 1, Period: 5, WCET: 1})

	policy := NewFixedPriorityRM()
	require.NoError(t, policy.AssignPriorities([]*Task{a, b, c}))

	// Shorter period implies strictly greater priority.
	assert.Greater(t, c.Priority, a.Priority)
	assert.Greater(t, a.Priority, b.Priority)
}

func TestAssignPrioritiesBreaksTiesByAscendingID(t *testing.T) {
	a := mustTask(t, TaskSpec{ID: 5, Period: 10, WCET: 1})
	b := mustTask(t, TaskSpec{ID: 1, Period: 10, WCET: 1})

	policy := NewFixedPriorityRM()
	require.NoError(t, policy.AssignPriorities([]*Task{a, b}))

	assert.Greater(t, b.Priority, a.Priority)
}

func TestNextJobPrefersHighestPriorityReadyJob(t *testing.T) {
	a := mustTask(t, TaskSpec{ID: 1, Period: 10, WCET: 3})
	b := mustTask(t, TaskSpec{ID: 2, Period: 20, WCET: 3})
	policy := NewFixedPriorityRM()
	require.NoError(t, policy.AssignPriorities([]*Task{a, b}))

	jobA := newJob(a, 0, a.WCET)
	jobB := newJob(b, 0, b.WCET)

	next := policy.NextJob(0, []*Job{jobA, jobB})
	assert.Same(t, jobA, next)
}

func TestNextJobFallsBackToEarliestFutureReleaseWhenNoneReady(t *testing.T) {
	a := mustTask(t, TaskSpec{ID: 1, Period: 10, WCET: 3})
	b := mustTask(t, TaskSpec{ID: 2, Period: 20, WCET: 3})
	policy := NewFixedPriorityRM()
	require.NoError(t, policy.AssignPriorities([]*Task{a, b}))

	jobA := newJob(a, 10, a.WCET)
	jobB := newJob(b, 5, b.WCET)

	next := policy.NextJob(0, []*Job{jobA, jobB})
	assert.Same(t, jobB, next)
}

func TestPreemptingTickIgnoresLowerOrEqualPriorityArrivals(t *testing.T) {
	a := mustTask(t, TaskSpec{ID: 1, Period: 10, WCET: 3})
	b := mustTask(t, TaskSpec{ID: 2, Period: 20, WCET: 8})
	policy := NewFixedPriorityRM()
	require.NoError(t, policy.AssignPriorities([]*Task{a, b}))

	running := newJob(b, 0, b.WCET)
	equalPriorityArrival := newJob(b, 3, b.WCET)

	_, preempted := policy.PreemptingTick(running, 0, []*Job{running, equalPriorityArrival})
	assert.False(t, preempted)
}

func TestPreemptingTickReturnsEarliestHigherPriorityArrival(t *testing.T) {
	a := mustTask(t, TaskSpec{ID: 1, Period: 10, WCET: 2})
	b := mustTask(t, TaskSpec{ID: 2, Period: 20, WCET: 8})
	policy := NewFixedPriorityRM()
	require.NoError(t, policy.AssignPriorities([]*Task{a, b}))

	running := newJob(b, 0, b.WCET)
	higherPriorityArrival := newJob(a, 5, a.WCET)

	tick, preempted := policy.PreemptingTick(running, 0, []*Job{running, higherPriorityArrival})
	require.True(t, preempted)
	assert.Equal(t, int64(5), tick)
}
