package rtsim

import "math/rand"

// VariationOracle supplies per-release execution time and sporadic
// inter-arrival time. Implementations must be deterministic given their
// seed state; the core calls each method at most once per next-job
// materialization.
type VariationOracle interface {
	// VariedExecutionTime returns a positive execution time no greater
	// than task.WCET.
	VariedExecutionTime(task *Task) int64

	// VariedInterArrivalTime returns a value no smaller than task.Period
	// (the period is the minimum separation for a sporadic task). Never
	// called for periodic tasks.
	VariedInterArrivalTime(task *Task) int64
}

// NoVariationOracle is the identity oracle: execution time is always the
// task's WCET and inter-arrival time is always its period.
type NoVariationOracle struct{}

// VariedExecutionTime returns task.WCET unchanged.
func (NoVariationOracle) VariedExecutionTime(task *Task) int64 { return task.WCET }

// VariedInterArrivalTime returns task.Period unchanged.
func (NoVariationOracle) VariedInterArrivalTime(task *Task) int64 { return task.Period }

// BoundedRandomOracle draws execution time uniformly from (0, WCET] and
// inter-arrival time uniformly from [Period, Period*CeilFactor], using a
// private *rand.Rand seeded at construction so that two oracles never
// share RNG state and a run is reproducible given its seed.
type BoundedRandomOracle struct {
	rng *rand.Rand
	// CeilFactor bounds how much later than Period a sporadic release may
	// slip; must be >= 1. 1 degenerates to the periodic case.
	CeilFactor float64
}

// NewBoundedRandomOracle creates a seeded BoundedRandomOracle. A
// non-positive or sub-1 ceilFactor is clamped to 1.
func NewBoundedRandomOracle(seed int64, ceilFactor float64) *BoundedRandomOracle {
	if ceilFactor < 1 {
		ceilFactor = 1
	}
	return &BoundedRandomOracle{
		rng:        rand.New(rand.NewSource(seed)),
		CeilFactor: ceilFactor,
	}
}

// VariedExecutionTime returns a value in [1, task.WCET].
func (o *BoundedRandomOracle) VariedExecutionTime(task *Task) int64 {
	if task.WCET <= 1 {
		return task.WCET
	}
	return 1 + o.rng.Int63n(task.WCET)
}

// VariedInterArrivalTime returns a value in [task.Period, task.Period*CeilFactor].
func (o *BoundedRandomOracle) VariedInterArrivalTime(task *Task) int64 {
	span := int64(float64(task.Period) * (o.CeilFactor - 1))
	if span <= 0 {
		return task.Period
	}
	return task.Period + o.rng.Int63n(span+1)
}
