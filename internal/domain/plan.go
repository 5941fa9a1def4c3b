package domain

import "math"

// DefaultRate is the planned throughput assumed for a quarter until the
// operator enters one, in units per labor hour.
const DefaultRate = 250.0

// QuarterPlan is the operator's editable staffing input for one quarter.
type QuarterPlan struct {
	Hours float64
	Rate  float64
}

// Sanitize coerces malformed numeric input to safe values: non-finite or
// negative hours become 0, non-finite or non-positive rates become the
// default rate. Arithmetic downstream never sees NaN.
func (p QuarterPlan) Sanitize() QuarterPlan {
	if math.IsNaN(p.Hours) || math.IsInf(p.Hours, 0) || p.Hours < 0 {
		p.Hours = 0
	}
	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) || p.Rate <= 0 {
		p.Rate = DefaultRate
	}
	return p
}

// Capacity is the volume this plan commits to: hours times rate.
func (p QuarterPlan) Capacity() float64 {
	s := p.Sanitize()
	return s.Hours * s.Rate
}

// ShiftAggregate is the derived shift-level rollup. It is recomputed from
// the snapshot and plan inputs on every read, never stored.
type ShiftAggregate struct {
	Name            string
	ExpectedVolume  float64
	PlannedHours    float64
	PlannedCapacity float64
	AvgThroughput   float64
	RequiredHours   float64
}

// TrajectoryStep is one link of the backlog handoff chain. EndBacklog of a
// step becomes StartBacklog of the next.
type TrajectoryStep struct {
	Shift           string
	StartBacklog    float64
	ExpectedVolume  float64
	PlannedCapacity float64
	EndBacklog      float64
}
