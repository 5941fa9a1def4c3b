package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchedule_CatalogTilesTime(t *testing.T) {
	require.NoError(t, ValidateSchedule(Shifts()))
}

func TestValidateSchedule_RejectsGaps(t *testing.T) {
	broken := []ShiftDefinition{
		{Name: "A", Quarters: []QuarterDefinition{
			{ID: "A1", StartHour: 6, EndHour: 9, Day: DayCurrent},
			{ID: "A2", StartHour: 12, EndHour: 15, Day: DayCurrent},
		}},
	}
	assert.Error(t, ValidateSchedule(broken))
}

func TestValidateSchedule_RejectsZeroLengthQuarter(t *testing.T) {
	broken := []ShiftDefinition{
		{Name: "A", Quarters: []QuarterDefinition{
			{ID: "A1", StartHour: 6, EndHour: 6, Day: DayCurrent},
		}},
	}
	assert.Error(t, ValidateSchedule(broken))
}

func TestValidateSchedule_AcceptsMidnightHandoff(t *testing.T) {
	shifts := []ShiftDefinition{
		{Name: "Night", Quarters: []QuarterDefinition{
			{ID: "N1", StartHour: 21, EndHour: 0, Day: DayCurrent},
			{ID: "N2", StartHour: 0, EndHour: 3, Day: DayNext},
		}},
	}
	assert.NoError(t, ValidateSchedule(shifts))
}

func TestCrossesMidnight(t *testing.T) {
	assert.True(t, QuarterDefinition{StartHour: 21, EndHour: 0}.CrossesMidnight())
	assert.False(t, QuarterDefinition{StartHour: 0, EndHour: 3}.CrossesMidnight())
	assert.False(t, QuarterDefinition{StartHour: 15, EndHour: 18}.CrossesMidnight())
}

func TestShiftByName(t *testing.T) {
	s, ok := ShiftByName("Current Night")
	require.True(t, ok)
	assert.Len(t, s.Quarters, 4)

	_, ok = ShiftByName("Graveyard")
	assert.False(t, ok)
}

func TestShiftCatalog_QuarterIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Shifts() {
		for _, q := range s.Quarters {
			assert.False(t, seen[q.ID], "duplicate quarter id %s", q.ID)
			seen[q.ID] = true
		}
	}
}
