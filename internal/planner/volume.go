package planner

import (
	"math"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// QuarterVolume computes the expected incremental volume for one quarter
// from the cumulative prediction series. It is pure and cheap, and is
// recomputed at every call site instead of cached so the aggregator, the
// backlog engine and the solver always agree on a single source of truth.
//
// The series stores cumulative volume by hour, resetting at midnight. The
// value at the end of the quarter is the cumulative value at EndHour-1
// (hour 23 when the quarter ends at midnight). The value at the start is
// the cumulative value at StartHour-1 - except when StartHour is 0: the
// series carries no "hour -1" point and the day's cumulative volume starts
// at zero, so the start value is exactly 0. Keep that special case; folding
// it into a generic formula changes every first-quarter-of-day figure.
func QuarterVolume(q domain.QuarterDefinition, series []domain.PredictionPoint, anchors Anchors) float64 {
	date := anchors.Date(q.Day)
	if date == NoDate {
		return 0
	}

	start := 0.0
	if q.StartHour > 0 {
		start = ValueAtHour(series, date, q.StartHour-1)
	}

	endLookup := q.EndHour - 1
	if q.EndHour == 0 {
		endLookup = 23
	}

	if q.CrossesMidnight() {
		// Split at the day boundary: volume accumulated from StartHour to
		// 23:00 on the start date, plus volume accumulated on the end date
		// up to the end lookup hour. Segments are clamped independently so
		// forecast noise on one side cannot eat the other.
		endDate := OffsetDate(date, 1)
		head := math.Max(0, ValueAtHour(series, date, 23)-start)
		tail := math.Max(0, ValueAtHour(series, endDate, endLookup))
		return head + tail
	}

	return math.Max(0, ValueAtHour(series, date, endLookup)-start)
}
