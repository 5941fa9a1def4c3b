package formatter

import (
	"fmt"
	"strings"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// QuarterRow is one rendered quarter of a shift plan: its derived volume
// plus the operator's staffing entry.
type QuarterRow struct {
	ID     string
	Label  string
	Volume float64
	Plan   domain.QuarterPlan
}

// FormatShiftTable renders the shift-level rollup table.
func FormatShiftTable(aggs []domain.ShiftAggregate) string {
	headers := []string{"SHIFT", "VOLUME", "HOURS", "REQ", "CAPACITY", "AVG RATE"}
	aligns := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}

	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		capStyle := CoverageStyle(a.PlannedCapacity, a.ExpectedVolume)
		rows = append(rows, []string{
			a.Name,
			FormatUnits(a.ExpectedVolume),
			FormatHours(a.PlannedHours),
			FormatHours(a.RequiredHours),
			capStyle.Render(FormatUnits(a.PlannedCapacity)),
			FormatRate(a.AvgThroughput),
		})
	}
	return RenderTable(headers, rows, aligns)
}

// FormatQuarterTable renders one shift's quarters with their plan inputs.
func FormatQuarterTable(shiftName string, rows []QuarterRow) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(strings.ToUpper(shiftName)) + "\n")

	headers := []string{"QTR", "WINDOW", "VOLUME", "HOURS", "RATE", "CAPACITY"}
	aligns := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		p := r.Plan.Sanitize()
		table = append(table, []string{
			r.ID,
			r.Label,
			FormatUnits(r.Volume),
			FormatHours(p.Hours),
			FormatRate(p.Rate),
			FormatUnits(p.Capacity()),
		})
	}
	b.WriteString(RenderTable(headers, table, aligns))
	return b.String()
}

// FormatTrajectory renders the backlog handoff chain. The end column is
// colored by direction: green when the shift burns backlog down, red when
// it hands more work forward than it received.
func FormatTrajectory(startBacklog float64, steps []domain.TrajectoryStep) string {
	var b strings.Builder
	b.WriteString(Dim("Starting backlog  ") + Bold(FormatUnits(startBacklog)) + "\n\n")

	if len(steps) == 0 {
		b.WriteString(Dim("No upcoming shifts in the planning window.") + "\n")
		return b.String()
	}

	headers := []string{"SHIFT", "START", "+VOLUME", "-CAPACITY", "END"}
	aligns := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight}

	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		endStyle := StyleGreen
		if s.EndBacklog > s.StartBacklog {
			endStyle = StyleRed
		}
		rows = append(rows, []string{
			s.Shift,
			FormatUnits(s.StartBacklog),
			FormatUnits(s.ExpectedVolume),
			FormatUnits(s.PlannedCapacity),
			endStyle.Render(FormatUnits(s.EndBacklog)),
		})
	}
	b.WriteString(RenderTable(headers, rows, aligns))
	return b.String()
}

// FormatLedger renders the latest reading of each ledger metric.
func FormatLedger(l domain.Ledger) string {
	var b strings.Builder
	asOf := ""
	if len(l.TimePoints) > 0 {
		asOf = l.TimePoints[len(l.TimePoints)-1]
	}
	if asOf != "" {
		b.WriteString(Dim("As of "+asOf) + "\n")
	}

	rows := [][]string{
		{"Available to pick", FormatUnits(l.Latest(domain.MetricAvailableToPick))},
		{"Eligible", FormatUnits(l.Latest(domain.MetricEligible))},
		{"Shipped", FormatUnits(l.Latest(domain.MetricShipped))},
		{"Backlog", Bold(FormatUnits(l.Backlog()))},
	}
	b.WriteString(RenderTable([]string{"METRIC", "UNITS"}, rows, []Align{AlignLeft, AlignRight}))
	return b.String()
}

// FormatSnapshotSummary renders the headline figures of a fetched snapshot.
func FormatSnapshotSummary(source, candidate string, snap *domain.Snapshot) string {
	var b strings.Builder
	b.WriteString(SourceBadge(source))
	if candidate != "" {
		b.WriteString("  " + Dim(candidate))
	}
	b.WriteString("\n")

	if snap.Empty() {
		b.WriteString(Dim("No forecast data available.") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Plan date        "), Bold(snap.CurrentDate)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Network forecast "), FormatUnits(snap.NetworkPrediction)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Extended points  "), FormatUnits(float64(len(snap.Extended)))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Current backlog  "), Bold(FormatUnits(snap.Ledger.Backlog()))))
	return b.String()
}
