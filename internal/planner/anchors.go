package planner

import (
	"time"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// Clock supplies "now". Injected so shift-boundary detection is
// deterministic under test.
type Clock func() time.Time

// Anchors maps each schedule day role to its resolved calendar date.
// Dates that could not be resolved hold NoDate.
type Anchors map[domain.DayRole]string

// ResolveAnchors derives the anchor dates from the snapshot's current-day
// date. An empty or malformed date resolves every role to NoDate, which
// degrades all volume figures to zero rather than erroring.
func ResolveAnchors(currentDate string) Anchors {
	return Anchors{
		domain.DayCurrent: OffsetDate(currentDate, 0),
		domain.DayNext:    OffsetDate(currentDate, 1),
		domain.DayPlusTwo: OffsetDate(currentDate, 2),
	}
}

// Date returns the calendar date for a day role, or NoDate when unknown.
func (a Anchors) Date(role domain.DayRole) string {
	if a == nil {
		return NoDate
	}
	d, ok := a[role]
	if !ok || d == "" {
		return NoDate
	}
	return d
}
