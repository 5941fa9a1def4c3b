package planner

import (
	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// AggregateShift rolls a shift's quarters up into shift-level totals.
// Plan inputs only affect the capacity and hour fields; expected volume is
// the sum of QuarterVolume over the quarters regardless of staffing.
// A quarter with no plan entry counts as zero hours at the default rate.
func AggregateShift(
	shift domain.ShiftDefinition,
	series []domain.PredictionPoint,
	anchors Anchors,
	plans map[string]domain.QuarterPlan,
	targetRate float64,
) domain.ShiftAggregate {
	agg := domain.ShiftAggregate{Name: shift.Name}

	for _, q := range shift.Quarters {
		vol := QuarterVolume(q, series, anchors)
		plan := plans[q.ID].Sanitize()

		agg.ExpectedVolume += vol
		agg.PlannedHours += plan.Hours
		agg.PlannedCapacity += plan.Hours * plan.Rate
		if targetRate > 0 {
			agg.RequiredHours += vol / targetRate
		}
	}

	if agg.PlannedHours > 0 {
		agg.AvgThroughput = agg.ExpectedVolume / agg.PlannedHours
	}
	return agg
}
