package rtsim

import "github.com/google/uuid"

// SchedulingPolicyLabel names the scheduling policy an EventContainer's
// trace was produced under.
type SchedulingPolicyLabel string

// PolicyFixedPriority is the label stamped by FixedPriorityRM.
const PolicyFixedPriority SchedulingPolicyLabel = "FixedPriority"

// EventContainer is an append-only, totally ordered (by insertion, which
// is also Begin order) sequence of SchedulerIntervalEvents plus the
// scheduling-policy label they were produced under. RunID distinguishes
// one simulation run from another for downstream exporters; the core
// itself never reads it back.
type EventContainer struct {
	RunID            string
	SchedulingPolicy SchedulingPolicyLabel

	events []SchedulerIntervalEvent
}

// NewEventContainer creates an empty container tagged with policy and a
// fresh RunID.
func NewEventContainer(policy SchedulingPolicyLabel) *EventContainer {
	return &EventContainer{
		RunID:            uuid.NewString(),
		SchedulingPolicy: policy,
	}
}

// Add appends an event to the container. Events must be added in
// non-decreasing Begin order; the container does not re-sort or coalesce.
func (c *EventContainer) Add(e SchedulerIntervalEvent) {
	c.events = append(c.events, e)
}

// Events returns the container's events in insertion order. The returned
// slice is owned by the container and must not be mutated by the caller.
func (c *EventContainer) Events() []SchedulerIntervalEvent { return c.events }

// Len returns the number of events currently in the container.
func (c *EventContainer) Len() int { return len(c.events) }

// TrimTo truncates the trailing event(s) so that no event's End exceeds t,
// dropping any event whose Begin exceeds t entirely. A trailing event that
// degenerates to zero length after truncation is dropped as well: the
// container never legitimately holds a zero-length event (see
// DESIGN.md's resolved reading of the zero-length-event open question),
// so a degenerate truncation artifact is discarded rather than kept.
func (c *EventContainer) TrimTo(t int64) {
	out := c.events[:0:0]
	for _, e := range c.events {
		if e.Begin > t {
			continue
		}
		if e.End > t {
			e.End = t
		}
		if e.Begin == e.End {
			continue
		}
		out = append(out, e)
	}
	c.events = out
}

// TrimBefore discards every event that ends at or before t, and pulls the
// Begin of any event straddling t forward to t. Symmetric to TrimTo.
func (c *EventContainer) TrimBefore(t int64) {
	out := c.events[:0:0]
	for _, e := range c.events {
		if e.End <= t {
			continue
		}
		if e.Begin < t {
			e.Begin = t
		}
		out = append(out, e)
	}
	c.events = out
}
