package domain

import "fmt"

// DayRole identifies which calendar day a quarter falls on, relative to the
// snapshot's current-day anchor date. Night shifts need this because their
// back half lands on the following day.
type DayRole string

const (
	DayCurrent DayRole = "current"
	DayNext    DayRole = "next"
	DayPlusTwo DayRole = "plus_two"
)

// QuarterDefinition is one fixed 3-hour planning block of a shift.
// StartHour > EndHour marks a block that crosses midnight (e.g. 21:00-00:00);
// its end resolves to hour 0 of the following calendar day.
type QuarterDefinition struct {
	ID        string
	Label     string
	StartHour int
	EndHour   int
	Day       DayRole
}

// CrossesMidnight reports whether the quarter's window wraps past 23:59.
func (q QuarterDefinition) CrossesMidnight() bool {
	return q.StartHour > q.EndHour
}

// ShiftDefinition names an ordered run of quarters.
type ShiftDefinition struct {
	Name     string
	Quarters []QuarterDefinition
}

// shiftCatalog is the static schedule: five shifts covering the current day
// through two days ahead. Quarters tile time contiguously with no gaps, in
// declared order, starting at 06:00 of the current day.
var shiftCatalog = []ShiftDefinition{
	{
		Name: "Current Day",
		Quarters: []QuarterDefinition{
			{ID: "CD1", Label: "06:00-09:00", StartHour: 6, EndHour: 9, Day: DayCurrent},
			{ID: "CD2", Label: "09:00-12:00", StartHour: 9, EndHour: 12, Day: DayCurrent},
			{ID: "CD3", Label: "12:00-15:00", StartHour: 12, EndHour: 15, Day: DayCurrent},
			{ID: "CD4", Label: "15:00-18:00", StartHour: 15, EndHour: 18, Day: DayCurrent},
		},
	},
	{
		Name: "Current Night",
		Quarters: []QuarterDefinition{
			{ID: "CN1", Label: "18:00-21:00", StartHour: 18, EndHour: 21, Day: DayCurrent},
			{ID: "CN2", Label: "21:00-00:00", StartHour: 21, EndHour: 0, Day: DayCurrent},
			{ID: "CN3", Label: "00:00-03:00", StartHour: 0, EndHour: 3, Day: DayNext},
			{ID: "CN4", Label: "03:00-06:00", StartHour: 3, EndHour: 6, Day: DayNext},
		},
	},
	{
		Name: "Next Day",
		Quarters: []QuarterDefinition{
			{ID: "ND1", Label: "06:00-09:00", StartHour: 6, EndHour: 9, Day: DayNext},
			{ID: "ND2", Label: "09:00-12:00", StartHour: 9, EndHour: 12, Day: DayNext},
			{ID: "ND3", Label: "12:00-15:00", StartHour: 12, EndHour: 15, Day: DayNext},
			{ID: "ND4", Label: "15:00-18:00", StartHour: 15, EndHour: 18, Day: DayNext},
		},
	},
	{
		Name: "Next Night",
		Quarters: []QuarterDefinition{
			{ID: "NN1", Label: "18:00-21:00", StartHour: 18, EndHour: 21, Day: DayNext},
			{ID: "NN2", Label: "21:00-00:00", StartHour: 21, EndHour: 0, Day: DayNext},
			{ID: "NN3", Label: "00:00-03:00", StartHour: 0, EndHour: 3, Day: DayPlusTwo},
			{ID: "NN4", Label: "03:00-06:00", StartHour: 3, EndHour: 6, Day: DayPlusTwo},
		},
	},
	{
		Name: "Third Day",
		Quarters: []QuarterDefinition{
			{ID: "TD1", Label: "06:00-09:00", StartHour: 6, EndHour: 9, Day: DayPlusTwo},
			{ID: "TD2", Label: "09:00-12:00", StartHour: 9, EndHour: 12, Day: DayPlusTwo},
			{ID: "TD3", Label: "12:00-15:00", StartHour: 12, EndHour: 15, Day: DayPlusTwo},
			{ID: "TD4", Label: "15:00-18:00", StartHour: 15, EndHour: 18, Day: DayPlusTwo},
		},
	},
}

// Shifts returns the shift catalog in chronological order. Callers must not
// mutate the returned slice.
func Shifts() []ShiftDefinition {
	return shiftCatalog
}

// ShiftByName looks up a catalog shift. The second return is false when the
// name is unknown.
func ShiftByName(name string) (ShiftDefinition, bool) {
	for _, s := range shiftCatalog {
		if s.Name == name {
			return s, true
		}
	}
	return ShiftDefinition{}, false
}

// dayRoleOffset maps a DayRole to its day offset from the anchor date.
func dayRoleOffset(role DayRole) int {
	switch role {
	case DayCurrent:
		return 0
	case DayNext:
		return 1
	case DayPlusTwo:
		return 2
	default:
		return 0
	}
}

// DayOffset returns the quarter's calendar-day offset from the anchor date.
func (q QuarterDefinition) DayOffset() int {
	return dayRoleOffset(q.Day)
}

// ValidateSchedule checks the catalog invariants: every quarter spans exactly
// three hours, quarters within a shift are contiguous, and across shifts in
// declared order the schedule tiles time with no gaps or overlaps.
func ValidateSchedule(shifts []ShiftDefinition) error {
	prevEnd := -1
	prevDay := 0
	for _, s := range shifts {
		if len(s.Quarters) == 0 {
			return fmt.Errorf("shift %q has no quarters", s.Name)
		}
		for _, q := range s.Quarters {
			if q.StartHour == q.EndHour {
				return fmt.Errorf("quarter %s: start and end hour are both %d", q.ID, q.StartHour)
			}
			if span(q) != 3 {
				return fmt.Errorf("quarter %s: spans %d hours, want 3", q.ID, span(q))
			}
			startDay := q.DayOffset()
			if prevEnd >= 0 {
				if startDay != prevDay || q.StartHour != prevEnd {
					return fmt.Errorf("quarter %s: starts day %d hour %d, previous quarter ended day %d hour %d",
						q.ID, startDay, q.StartHour, prevDay, prevEnd)
				}
			}
			prevDay = startDay
			prevEnd = q.EndHour
			if q.CrossesMidnight() {
				prevDay++
				prevEnd = q.EndHour // hour on the following day (0 for midnight)
			}
		}
	}
	return nil
}

func span(q QuarterDefinition) int {
	if q.CrossesMidnight() {
		return 24 - q.StartHour + q.EndHour
	}
	return q.EndHour - q.StartHour
}
