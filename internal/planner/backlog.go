package planner

import (
	"math"
	"time"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// ProjectBacklog walks the given shifts in order, carrying the backlog
// forward: each step ends at max(0, start + expected volume - planned
// capacity), and that end becomes the next step's start. The fold is
// order-sensitive; callers pass shifts chronologically (see UpcomingShifts).
// Backlog cannot go negative - capacity beyond the work available is idle,
// not banked.
func ProjectBacklog(
	startBacklog float64,
	shifts []domain.ShiftDefinition,
	series []domain.PredictionPoint,
	anchors Anchors,
	plans map[string]domain.QuarterPlan,
) []domain.TrajectoryStep {
	steps := make([]domain.TrajectoryStep, 0, len(shifts))
	backlog := math.Max(0, startBacklog)

	for _, s := range shifts {
		var vol, capacity float64
		for _, q := range s.Quarters {
			vol += QuarterVolume(q, series, anchors)
			capacity += plans[q.ID].Capacity()
		}
		end := math.Max(0, backlog+vol-capacity)
		steps = append(steps, domain.TrajectoryStep{
			Shift:           s.Name,
			StartBacklog:    backlog,
			ExpectedVolume:  vol,
			PlannedCapacity: capacity,
			EndBacklog:      end,
		})
		backlog = end
	}
	return steps
}

// UpcomingShifts returns the catalog shifts that start after the shift
// containing now, in order. When now falls before the first shift's window,
// every shift whose start is still ahead is returned. Unresolvable anchors
// yield an empty slice.
func UpcomingShifts(shifts []domain.ShiftDefinition, anchors Anchors, now time.Time) []domain.ShiftDefinition {
	var upcoming []domain.ShiftDefinition
	for _, s := range shifts {
		start, end, ok := ShiftBounds(s, anchors, now.Location())
		if !ok {
			continue
		}
		if !now.Before(end) {
			continue // already over
		}
		if !now.Before(start) {
			continue // in progress: projection starts after it
		}
		upcoming = append(upcoming, s)
	}
	return upcoming
}

// ShiftBounds resolves a shift's concrete start and end timestamps from the
// anchor dates, in loc. Anchor dates carry no zone of their own, so bounds
// must be placed in the same location as the clock they are compared
// against or the comparison drifts by the zone offset. ok is false when the
// anchors cannot place the shift on the calendar.
func ShiftBounds(s domain.ShiftDefinition, anchors Anchors, loc *time.Location) (start, end time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	if len(s.Quarters) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first := s.Quarters[0]
	last := s.Quarters[len(s.Quarters)-1]

	startDate := anchors.Date(first.Day)
	endDate := anchors.Date(last.Day)
	if startDate == NoDate || endDate == NoDate {
		return time.Time{}, time.Time{}, false
	}
	if last.CrossesMidnight() {
		endDate = OffsetDate(endDate, 1)
	}

	startDay, err := time.ParseInLocation(dateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endDay, err := time.ParseInLocation(dateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	start = startDay.Add(time.Duration(first.StartHour) * time.Hour)
	end = endDay.Add(time.Duration(last.EndHour) * time.Hour)
	return start, end, true
}
