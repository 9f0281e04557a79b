package rtsim

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// FixedPriorityRM is the preemptive, fixed-priority scheduling policy
// using rate-monotonic (RM) priority assignment: a shorter period implies
// a higher priority, ties broken by ascending task ID. It is the
// canonical instantiation of SchedulingPolicy.
type FixedPriorityRM struct{}

// NewFixedPriorityRM returns a FixedPriorityRM policy.
func NewFixedPriorityRM() *FixedPriorityRM { return &FixedPriorityRM{} }

// Label returns PolicyFixedPriority.
func (p *FixedPriorityRM) Label() SchedulingPolicyLabel { return PolicyFixedPriority }

// AssignPriorities assigns priorities in rate-monotonic order: shortest
// period gets the greatest numeric priority, ties broken by task ID
// ascending.
func (p *FixedPriorityRM) AssignPriorities(tasks []*Task) error {
	ordered := make([]*Task, len(tasks))
	copy(ordered, tasks)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Period != ordered[j].Period {
			return ordered[i].Period < ordered[j].Period
		}
		return ordered[i].ID < ordered[j].ID
	})

	seen := make(map[int]bool, len(ordered))
	n := len(ordered)
	for i, t := range ordered {
		priority := n - i
		if seen[priority] {
			return fmt.Errorf("rtsim: duplicate priority %d assigned to task %d", priority, t.ID)
		}
		seen[priority] = true
		t.Priority = priority
	}
	return nil
}

// fpKey orders jobs by (priority desc, task ID asc). NextJob puts every
// ready job into a red-black tree under this key and takes its leftmost
// node.
type fpKey struct {
	priority int
	id       TaskID
}

func fpCompare(a, b interface{}) int {
	ka, kb := a.(fpKey), b.(fpKey)
	switch {
	case ka.priority > kb.priority:
		return -1
	case ka.priority < kb.priority:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

// NextJob returns the highest-priority ready job, or, if none is ready,
// the job with the earliest future release (ties broken by priority).
func (p *FixedPriorityRM) NextJob(tick int64, jobs []*Job) *Job {
	ready := redblacktree.NewWith(fpCompare)
	for _, j := range jobs {
		if j.ReleaseTime > tick {
			continue
		}
		ready.Put(fpKey{priority: j.Task.Priority, id: j.Task.ID}, j)
	}
	if node := ready.Left(); node != nil {
		return node.Value.(*Job)
	}

	var best *Job
	for _, j := range jobs {
		switch {
		case best == nil:
			best = j
		case j.ReleaseTime < best.ReleaseTime:
			best = j
		case j.ReleaseTime == best.ReleaseTime && j.Task.Priority > best.Task.Priority:
			best = j
		}
	}
	return best
}

// PreemptingTick returns the minimum release time among jobs other than
// running whose release is strictly within (tick, tick+running.RemainingExecTime)
// and whose task priority strictly exceeds running's.
func (p *FixedPriorityRM) PreemptingTick(running *Job, tick int64, jobs []*Job) (int64, bool) {
	finish := tick + running.RemainingExecTime
	found := false
	var earliest int64
	for _, j := range jobs {
		if j == running {
			continue
		}
		if j.ReleaseTime <= tick || j.ReleaseTime >= finish {
			continue
		}
		if j.Task.Priority <= running.Task.Priority {
			continue
		}
		if !found || j.ReleaseTime < earliest {
			earliest = j.ReleaseTime
			found = true
		}
	}
	return earliest, found
}

// OnRunExecuted is an empty extensibility hook (see SchedulingPolicy).
func (p *FixedPriorityRM) OnRunExecuted(job *Job, tick int64, executedTicks int64) {}

// OnDeadlineMissed is an empty extensibility hook (see SchedulingPolicy).
func (p *FixedPriorityRM) OnDeadlineMissed(job *Job) {}
