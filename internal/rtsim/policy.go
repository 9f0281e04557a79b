package rtsim

// SchedulingPolicy is the capability an advanceable Simulator is
// parameterized by. It replaces the inheritance hierarchy of the original
// scheduler classes with a value that plugs into the shared core: the
// simulator owns the clock, the per-task next-job table, and the trace
// bookkeeping, and only asks the policy for the two decisions that differ
// between scheduling disciplines.
type SchedulingPolicy interface {
	// Label names this policy for EventContainer tagging.
	Label() SchedulingPolicyLabel

	// AssignPriorities assigns Task.Priority for every task in the set.
	// Called once, before the first job of any task is materialized. It
	// must return an error if two tasks end up with the same priority.
	AssignPriorities(tasks []*Task) error

	// NextJob selects the job that should run at tick from the given
	// snapshot of every task's current next-job. If no job is ready
	// (ReleaseTime <= tick), it returns the job with the earliest future
	// release instead.
	NextJob(tick int64, jobs []*Job) *Job

	// PreemptingTick returns the earliest tick strictly greater than tick
	// at which some other job in jobs would preempt running, or ok=false
	// if running can run to its natural completion undisturbed.
	PreemptingTick(running *Job, tick int64, jobs []*Job) (preemptTick int64, ok bool)

	// OnRunExecuted is an extensibility hook invoked whenever a job
	// executes on an interval, whether or not it is preempted. It has no
	// effect on the emitted event stream; the default implementation
	// supplied by FixedPriorityRM is empty.
	OnRunExecuted(job *Job, tick int64, executedTicks int64)

	// OnDeadlineMissed is invoked when a job's natural finish time
	// exceeds its absolute deadline and AssertOnDeadlineMiss is false.
	OnDeadlineMissed(job *Job)
}
