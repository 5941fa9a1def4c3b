package domain

// PredictionPoint is one entry of a cumulative hourly forecast series.
// Workable is the total accumulated volume from start-of-day through this
// hour, not an hourly delta; the series resets at midnight. Time keeps the
// pipeline's wire form ("2006-01-02T15:04") and is parsed lazily at lookup
// so that a malformed point degrades to "no data" rather than failing the
// whole snapshot.
type PredictionPoint struct {
	Time     string
	Workable float64
	Lower    float64
	Upper    float64
}

// Ledger metric names emitted by the forecasting pipeline.
const (
	MetricAvailableToPick = "AvailableToPick"
	MetricEligible        = "Eligible"
	MetricShipped         = "Shipped"
)

// Ledger holds the named metric arrays from the snapshot's ledger block.
// Each array is time-ordered; the last element is the current value.
type Ledger struct {
	TimePoints []string
	Metrics    map[string][]float64
}

// Latest returns the current (last) value of a metric, or 0 when the metric
// is absent or empty.
func (l Ledger) Latest(name string) float64 {
	vals := l.Metrics[name]
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}

// Backlog is the unprocessed unit count: units available to pick plus units
// eligible but not yet picked.
func (l Ledger) Backlog() float64 {
	return l.Latest(MetricAvailableToPick) + l.Latest(MetricEligible)
}

// TrendKey addresses one historical trend figure: a day of week and the
// averaging window (number of most recent same-day occurrences).
type TrendKey struct {
	Day    string
	Window int
}

// TrendTable is the historical-context lookup built once at decode time.
// It replaces ad-hoc string-key construction against the raw trend block.
type TrendTable struct {
	Daily map[TrendKey]float64
}

// DailyAverage returns the average total daily volume for a day of week over
// the given window, or 0 when no such figure exists in the snapshot.
func (t TrendTable) DailyAverage(day string, window int) float64 {
	return t.Daily[TrendKey{Day: day, Window: window}]
}

// PerformanceMetrics carries the pipeline's own end-of-day totals, shown on
// the dashboard for model-vs-network comparison.
type PerformanceMetrics struct {
	CurrentDayTotal float64
	NextDayTotal    float64
	NetworkTarget   float64
}

// Snapshot is the decoded forecast document the dashboard runs on. All
// fields are immutable once loaded; a missing section in the source JSON
// decodes to its zero value here.
type Snapshot struct {
	GeneratedAt string

	// Current-day block.
	CurrentDate       string // YYYY-MM-DD
	NetworkPrediction float64
	DayPredictions    []PredictionPoint
	NoSameDay         []PredictionPoint
	Actuals           []PredictionPoint
	PreviousYear      []PredictionPoint

	// Next-day block.
	NextDate           string
	NextDayPredictions []PredictionPoint

	// Extended rolling series spanning multiple days; this is the series
	// all quarter-volume math runs against.
	Extended []PredictionPoint

	Ledger      Ledger
	Trends      TrendTable
	Performance PerformanceMetrics
}

// Empty reports whether the snapshot carries no usable forecast data.
func (s *Snapshot) Empty() bool {
	return s == nil || (s.CurrentDate == "" && len(s.Extended) == 0)
}
