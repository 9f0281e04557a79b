// Package rtsim implements the advanceable scheduler core: a discrete-event
// simulator for hard real-time task systems executing under preemptive,
// priority-driven schedulers on a single processor.
package rtsim

import "fmt"

// TaskID uniquely identifies a task in a task set.
type TaskID int64

// IdleTaskID is the sentinel identifier used to represent processor
// idleness in the event log.
const IdleTaskID TaskID = -1

// Task is an immutable (post-construction) periodic or sporadic real-time
// task. Priority is the only field mutated after construction, and only by
// a SchedulingPolicy's AssignPriorities.
type Task struct {
	ID            TaskID
	Period        int64 // ticks
	WCET          int64 // worst-case execution time, ticks
	Deadline      int64 // relative deadline, ticks
	InitialOffset int64 // ticks
	Priority      int   // assigned by policy; greater value = more important
	Sporadic      bool

	idle bool
}

// IsIdle reports whether this Task is the idle-task sentinel.
func (t *Task) IsIdle() bool { return t.idle }

// IdleTask is the sentinel task attributed to processor idleness in the
// event log. It carries no period, WCET, or deadline and is never part of
// a task set handed to NewSimulator.
var IdleTask = &Task{ID: IdleTaskID, idle: true}

// TaskSpec is the set of parameters needed to construct a Task.
type TaskSpec struct {
	ID            TaskID
	Period        int64
	WCET          int64
	Deadline      int64 // 0 means "default to Period"
	InitialOffset int64
	Sporadic      bool
}

// NewTask validates a TaskSpec and returns the resulting Task. Period and
// WCET must be strictly positive; a zero Deadline defaults to Period.
func NewTask(spec TaskSpec) (*Task, error) {
	if spec.Period <= 0 {
		return nil, fmt.Errorf("rtsim: task %d has non-positive period %d", spec.ID, spec.Period)
	}
	if spec.WCET <= 0 {
		return nil, fmt.Errorf("rtsim: task %d has non-positive WCET %d", spec.ID, spec.WCET)
	}

	deadline := spec.Deadline
	if deadline == 0 {
		deadline = spec.Period
	}

	return &Task{
		ID:            spec.ID,
		Period:        spec.Period,
		WCET:          spec.WCET,
		Deadline:      deadline,
		InitialOffset: spec.InitialOffset,
		Sporadic:      spec.Sporadic,
	}, nil
}
