package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuarterPlan_SanitizeCoercesBadInput(t *testing.T) {
	p := QuarterPlan{Hours: math.NaN(), Rate: math.Inf(-1)}.Sanitize()
	assert.Zero(t, p.Hours)
	assert.Equal(t, DefaultRate, p.Rate)

	p = QuarterPlan{Hours: -3, Rate: 0}.Sanitize()
	assert.Zero(t, p.Hours)
	assert.Equal(t, DefaultRate, p.Rate)
}

func TestQuarterPlan_SanitizeKeepsGoodInput(t *testing.T) {
	p := QuarterPlan{Hours: 4.5, Rate: 180}.Sanitize()
	assert.Equal(t, 4.5, p.Hours)
	assert.Equal(t, 180.0, p.Rate)
}

func TestQuarterPlan_Capacity(t *testing.T) {
	assert.Equal(t, 810.0, QuarterPlan{Hours: 4.5, Rate: 180}.Capacity())
	assert.Zero(t, QuarterPlan{}.Capacity())
	assert.Zero(t, QuarterPlan{Hours: math.NaN(), Rate: 100}.Capacity())
}

func TestLedger_Latest(t *testing.T) {
	l := Ledger{Metrics: map[string][]float64{
		MetricAvailableToPick: {100, 140, 130},
		MetricEligible:        {},
	}}
	assert.Equal(t, 130.0, l.Latest(MetricAvailableToPick))
	assert.Zero(t, l.Latest(MetricEligible))
	assert.Zero(t, l.Latest("Unknown"))
}

func TestLedger_BacklogSumsPickableAndEligible(t *testing.T) {
	l := Ledger{Metrics: map[string][]float64{
		MetricAvailableToPick: {80, 120},
		MetricEligible:        {30},
	}}
	assert.Equal(t, 150.0, l.Backlog())
}

func TestLedger_BacklogEmptyLedgerIsZero(t *testing.T) {
	assert.Zero(t, Ledger{}.Backlog())
}

func TestTrendTable_DailyAverage(t *testing.T) {
	tt := TrendTable{Daily: map[TrendKey]float64{
		{Day: "Monday", Window: 6}: 42000,
	}}
	assert.Equal(t, 42000.0, tt.DailyAverage("Monday", 6))
	assert.Zero(t, tt.DailyAverage("Tuesday", 6))
	assert.Zero(t, TrendTable{}.DailyAverage("Monday", 6))
}

func TestSnapshot_Empty(t *testing.T) {
	var s *Snapshot
	assert.True(t, s.Empty())
	assert.True(t, (&Snapshot{}).Empty())
	assert.False(t, (&Snapshot{CurrentDate: "2025-03-15"}).Empty())
}
