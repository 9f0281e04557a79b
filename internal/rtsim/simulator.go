package rtsim

import "fmt"

// RunOptions are the recognized simulator configuration flags.
type RunOptions struct {
	// RunTimeVariation routes execution and inter-arrival time through
	// the VariationOracle instead of using WCET/Period directly.
	RunTimeVariation bool
	// GenIdleTimeEvents emits events for idle gaps instead of leaving
	// them implicit.
	GenIdleTimeEvents bool
	// AssertOnDeadlineMiss aborts the simulation (returns an error) on a
	// deadline miss instead of recording and truncating it.
	AssertOnDeadlineMiss bool
	// TraceEnabled maintains per-task deadline-miss counters, consecutive-
	// miss streaks, and inter-arrival history.
	TraceEnabled bool
}

// DefaultRunOptions returns the conservative defaults: idle events and
// deadline-miss assertions on, variation and tracing off.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		GenIdleTimeEvents:    true,
		AssertOnDeadlineMiss: true,
	}
}

// TaskTrace is a snapshot of one task's trace bookkeeping.
type TaskTrace struct {
	DeadlineMissCount        int64
	ConsecutiveMissStreak    int64
	MaxConsecutiveMissStreak int64
	InterArrivalHistory      []int64
}

// DeadlineMissError is returned by Advance/RunSim when AssertOnDeadlineMiss
// is set and a job would finish after its absolute deadline.
type DeadlineMissError struct {
	TaskID           TaskID
	AbsoluteDeadline int64
	FinishTime       int64
}

func (e *DeadlineMissError) Error() string {
	return fmt.Sprintf("rtsim: task %d missed its deadline: deadline=%d, finishTime=%d",
		e.TaskID, e.AbsoluteDeadline, e.FinishTime)
}

// Simulator is the advanceable scheduler core. It is single-threaded and
// synchronous: Advance is its only mutation boundary and is not reentrant.
type Simulator struct {
	tasks  []*Task
	policy SchedulingPolicy
	oracle VariationOracle
	opts   RunOptions

	tick          int64
	nextJobOfTask map[TaskID]*Job
	events        *EventContainer

	traces           map[TaskID]*TaskTrace
	missStreakActive map[TaskID]bool
}

// NewSimulator constructs a Simulator for tasks under policy, using oracle
// for variation (a nil oracle is replaced by NoVariationOracle). Every
// task's period and WCET must be strictly positive. One job per task is
// materialized immediately, using InitialOffset as its first release.
func NewSimulator(tasks []*Task, policy SchedulingPolicy, oracle VariationOracle, opts RunOptions) (*Simulator, error) {
	if oracle == nil {
		oracle = NoVariationOracle{}
	}

	sim := &Simulator{
		policy: policy,
		oracle: oracle,
		opts:   opts,
		events: NewEventContainer(policy.Label()),
	}

	if len(tasks) == 0 {
		return sim, nil
	}

	for _, t := range tasks {
		if t.Period <= 0 {
			return nil, fmt.Errorf("rtsim: task %d has non-positive period %d", t.ID, t.Period)
		}
		if t.WCET <= 0 {
			return nil, fmt.Errorf("rtsim: task %d has non-positive WCET %d", t.ID, t.WCET)
		}
	}

	if err := policy.AssignPriorities(tasks); err != nil {
		return nil, err
	}

	sim.tasks = tasks
	sim.nextJobOfTask = make(map[TaskID]*Job, len(tasks))
	sim.traces = make(map[TaskID]*TaskTrace, len(tasks))
	sim.missStreakActive = make(map[TaskID]bool, len(tasks))

	for _, t := range tasks {
		sim.traces[t.ID] = &TaskTrace{}
		exec := t.WCET
		if opts.RunTimeVariation {
			exec = oracle.VariedExecutionTime(t)
		}
		sim.nextJobOfTask[t.ID] = newJob(t, t.InitialOffset, exec)
	}

	return sim, nil
}

// Events returns the simulator's EventContainer.
func (s *Simulator) Events() *EventContainer { return s.events }

// Tick returns the simulator's current clock value.
func (s *Simulator) Tick() int64 { return s.tick }

// TaskTraceFor returns a snapshot of a task's trace state, or ok=false if
// the task is unknown or tracing was never enabled for this simulator.
func (s *Simulator) TaskTraceFor(id TaskID) (trace TaskTrace, ok bool) {
	if !s.opts.TraceEnabled {
		return TaskTrace{}, false
	}
	t, found := s.traces[id]
	if !found {
		return TaskTrace{}, false
	}
	return *t, true
}

func (s *Simulator) jobSnapshot() []*Job {
	jobs := make([]*Job, 0, len(s.nextJobOfTask))
	for _, j := range s.nextJobOfTask {
		jobs = append(jobs, j)
	}
	return jobs
}

// Advance runs the simulation forward by exactly one scheduling interval,
// appending the event(s) it produces to the EventContainer and advancing
// the clock. It is an error to call Advance on a simulator with an empty
// task set.
func (s *Simulator) Advance() error {
	if len(s.tasks) == 0 {
		return fmt.Errorf("rtsim: advance called on an empty task set")
	}

	jobs := s.jobSnapshot()
	current := s.policy.NextJob(s.tick, jobs)
	if current == nil {
		return fmt.Errorf("rtsim: scheduling policy returned no next job at tick %d", s.tick)
	}

	if current.ReleaseTime > s.tick {
		if s.opts.GenIdleTimeEvents {
			s.events.Add(SchedulerIntervalEvent{
				Begin:      s.tick,
				End:        current.ReleaseTime,
				Task:       IdleTask,
				BeginState: ScheduleBeginStart,
				EndState:   ScheduleEndEnd,
			})
		}
		s.tick = current.ReleaseTime
	}

	return s.runToNextSchedulingPoint(current, jobs)
}

func (s *Simulator) runToNextSchedulingPoint(job *Job, jobs []*Job) error {
	tick := s.tick
	preemptTick, preempted := s.policy.PreemptingTick(job, tick, jobs)
	if preempted && preemptTick <= tick {
		return fmt.Errorf("rtsim: scheduling policy returned preempting tick %d at or before current tick %d", preemptTick, tick)
	}

	beginState := ScheduleBeginResume
	if !job.HasStarted {
		beginState = ScheduleBeginStart
		job.HasStarted = true
	}

	if preempted {
		job.RemainingExecTime -= preemptTick - tick
		s.policy.OnRunExecuted(job, preemptTick, preemptTick-tick)

		s.events.Add(SchedulerIntervalEvent{
			Begin:                 tick,
			End:                   preemptTick,
			Task:                  job.Task,
			JobInitialReleaseTime: job.ReleaseTime,
			BeginState:            beginState,
			EndState:              ScheduleEndSuspend,
		})

		s.tick = preemptTick
		return nil
	}

	finish := tick + job.RemainingExecTime
	emittedEnd := finish
	endState := ScheduleEndEnd

	if finish > job.AbsoluteDeadline {
		if s.opts.AssertOnDeadlineMiss {
			return &DeadlineMissError{
				TaskID:           job.Task.ID,
				AbsoluteDeadline: job.AbsoluteDeadline,
				FinishTime:       finish,
			}
		}

		if s.opts.TraceEnabled {
			trace := s.traces[job.Task.ID]
			trace.DeadlineMissCount++
			if s.missStreakActive[job.Task.ID] {
				trace.ConsecutiveMissStreak++
				if trace.ConsecutiveMissStreak > trace.MaxConsecutiveMissStreak {
					trace.MaxConsecutiveMissStreak = trace.ConsecutiveMissStreak
				}
			}
			s.missStreakActive[job.Task.ID] = true
		}

		s.policy.OnDeadlineMissed(job)
		emittedEnd = job.AbsoluteDeadline
		endState = ScheduleEndDeadlineMissed
	} else if s.opts.TraceEnabled {
		s.missStreakActive[job.Task.ID] = false
		s.traces[job.Task.ID].ConsecutiveMissStreak = 0
	}

	job.RemainingExecTime = 0
	s.policy.OnRunExecuted(job, emittedEnd, emittedEnd-tick)

	s.events.Add(SchedulerIntervalEvent{
		Begin:                 tick,
		End:                   emittedEnd,
		Task:                  job.Task,
		JobInitialReleaseTime: job.ReleaseTime,
		BeginState:            beginState,
		EndState:              endState,
	})

	s.materializeNextJob(job)
	s.tick = emittedEnd
	return nil
}

func (s *Simulator) materializeNextJob(retired *Job) {
	task := retired.Task

	var interArrival int64
	if task.Sporadic && s.opts.RunTimeVariation {
		interArrival = s.oracle.VariedInterArrivalTime(task)
	} else {
		interArrival = task.Period
	}
	nextRelease := retired.ReleaseTime + interArrival

	exec := task.WCET
	if s.opts.RunTimeVariation {
		exec = s.oracle.VariedExecutionTime(task)
	}

	s.nextJobOfTask[task.ID] = newJob(task, nextRelease, exec)

	if s.opts.TraceEnabled {
		trace := s.traces[task.ID]
		trace.InterArrivalHistory = append(trace.InterArrivalHistory, interArrival)
	}
}

// RunSim calls Advance repeatedly while the clock is strictly less than
// tickLimit, then trims the trailing event(s) to tickLimit. Called on an
// empty task set, it returns an empty container immediately. RunSim picks
// up from the simulator's current tick rather than rewinding it, so a
// second call with a larger tickLimit extends the same run instead of
// restarting it and corrupting the already-recorded event stream.
func (s *Simulator) RunSim(tickLimit int64) (*EventContainer, error) {
	if len(s.tasks) == 0 {
		return s.events, nil
	}

	for s.tick < tickLimit {
		if err := s.Advance(); err != nil {
			return s.events, err
		}
	}
	s.events.TrimTo(tickLimit)
	return s.events, nil
}

// RunSimWithOffset runs RunSim(offset+duration) then discards every event
// ending at or before offset, avoiding transient warm-up effects.
func (s *Simulator) RunSimWithOffset(offset, duration int64) (*EventContainer, error) {
	if _, err := s.RunSim(offset + duration); err != nil {
		return s.events, err
	}
	s.events.TrimBefore(offset)
	return s.events, nil
}

// DefaultOffset is the largest-period task's period plus its initial
// offset, a natural warm-up window for RunSimWithOffset.
func (s *Simulator) DefaultOffset() int64 {
	var largest *Task
	for _, t := range s.tasks {
		if largest == nil || t.Period > largest.Period {
			largest = t
		}
	}
	if largest == nil {
		return 0
	}
	return largest.Period + largest.InitialOffset
}

// RunSimWithDefaultOffset runs RunSimWithOffset(DefaultOffset(), duration).
func (s *Simulator) RunSimWithDefaultOffset(duration int64) (*EventContainer, error) {
	return s.RunSimWithOffset(s.DefaultOffset(), duration)
}

// Conclude trims the trailing event to the simulator's current tick and
// returns the container. Use it to stop a simulation early without
// calling RunSim.
func (s *Simulator) Conclude() *EventContainer {
	s.events.TrimTo(s.tick)
	return s.events
}
