package planner

import (
	"math"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// balanceFloorHours is the smallest solved value worth keeping; anything
// below it snaps to zero so the plan is not littered with 0.0-hour entries.
const balanceFloorHours = 0.05

// AutoBalance back-solves planned hours for every quarter of the given
// shifts so that planned capacity at the target rate matches required
// hours. It returns a fresh plan map: solved quarters get the computed
// hours, a previously entered rate survives, everything else keeps its
// existing entry untouched. The computation is pure, so re-running it with
// the same snapshot and target produces identical hours; the caller is
// responsible for triggering it once rather than on every render, or it
// would fight live operator edits.
func AutoBalance(
	shifts []domain.ShiftDefinition,
	series []domain.PredictionPoint,
	anchors Anchors,
	targetRate float64,
	existing map[string]domain.QuarterPlan,
) map[string]domain.QuarterPlan {
	out := make(map[string]domain.QuarterPlan, len(existing))
	for id, p := range existing {
		out[id] = p
	}

	for _, s := range shifts {
		for _, q := range s.Quarters {
			hours := 0.0
			if targetRate > 0 {
				hours = QuarterVolume(q, series, anchors) / targetRate
			}
			if hours < balanceFloorHours {
				hours = 0
			} else {
				hours = math.Round(hours*10) / 10
			}

			rate := domain.DefaultRate
			if prev, ok := existing[q.ID]; ok && prev.Rate > 0 {
				rate = prev.Rate
			}
			out[q.ID] = domain.QuarterPlan{Hours: hours, Rate: rate}
		}
	}
	return out
}
