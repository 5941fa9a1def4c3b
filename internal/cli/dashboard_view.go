package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tterrag131/reimagined-disco/internal/cli/formatter"
	"github.com/tterrag131/reimagined-disco/internal/domain"
)

func (m dashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + m.renderHeader() + "\n\n")

	if m.form != nil {
		b.WriteString(m.form.View())
		b.WriteString("\n\n" + formatter.Dim("esc cancel") + "\n")
		return b.String()
	}

	b.WriteString(m.renderTabBar() + "\n\n")

	switch m.tab {
	case tabPlan:
		b.WriteString(m.renderPlanTab())
	case tabTrajectory:
		b.WriteString(m.renderTrajectoryTab())
	case tabLedger:
		b.WriteString(m.renderLedgerTab())
	}

	b.WriteString("\n" + m.renderFooter() + "\n")
	return b.String()
}

// ── chrome ───────────────────────────────────────────────────────────────────

func (m dashboardModel) renderHeader() string {
	snap := m.app.Session.Snapshot()

	parts := []string{
		"  " + formatter.StyleHeader.Render("PRODUCTION DAILY PLAN"),
		formatter.SourceBadge(string(m.outcome.Source)),
	}
	if snap.CurrentDate != "" {
		parts = append(parts, formatter.Bold(snap.CurrentDate))
	}
	if m.outcome.Candidate != "" {
		parts = append(parts, formatter.Dim(m.outcome.Candidate))
	}
	if m.refreshing {
		parts = append(parts, m.spin.View()+formatter.Dim(" refreshing"))
	}
	return strings.Join(parts, "  ")
}

func (m dashboardModel) renderTabBar() string {
	tabs := make([]string, 0, int(tabCount))
	for t := dashTab(0); t < tabCount; t++ {
		title := t.title()
		if t == m.tab {
			tabs = append(tabs, formatter.StyleHeader.Render("["+title+"]"))
		} else {
			tabs = append(tabs, formatter.Dim(" "+title+" "))
		}
	}
	return "  " + strings.Join(tabs, " ")
}

func (m dashboardModel) renderFooter() string {
	help := "tab switch · ←/→ shift · ↑/↓ quarter · e edit · t target · b balance · r refresh · q quit"
	if m.tab != tabPlan {
		help = "tab switch · t target · b balance · r refresh · q quit"
	}
	return "  " + formatter.Dim(help)
}

// ── plan tab ─────────────────────────────────────────────────────────────────

func (m dashboardModel) renderPlanTab() string {
	shifts := domain.Shifts()
	shift := shifts[m.shiftIdx]
	sess := m.app.Session

	var b strings.Builder

	// Shift selector line.
	names := make([]string, 0, len(shifts))
	for i, s := range shifts {
		if i == m.shiftIdx {
			names = append(names, formatter.StyleGreen.Render("▸ "+s.Name))
		} else {
			names = append(names, formatter.Dim(s.Name))
		}
	}
	b.WriteString("  " + strings.Join(names, "   ") + "\n\n")

	// Quarter table with a cursor column.
	headers := []string{"", "QTR", "WINDOW", "VOLUME", "HOURS", "RATE", "CAPACITY"}
	aligns := []formatter.Align{
		formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft,
		formatter.AlignRight, formatter.AlignRight, formatter.AlignRight, formatter.AlignRight,
	}

	rows := make([][]string, 0, len(shift.Quarters))
	for i, q := range shift.Quarters {
		cursor := " "
		if i == m.quarterIdx {
			cursor = formatter.StyleGreen.Render("▸")
		}
		plan := sess.Plans().Plan(q.ID)
		rows = append(rows, []string{
			cursor,
			q.ID,
			q.Label,
			formatter.FormatUnits(sess.QuarterVolume(q)),
			formatter.FormatHours(plan.Hours),
			formatter.FormatRate(plan.Rate),
			formatter.FormatUnits(plan.Capacity()),
		})
	}
	b.WriteString(indent(formatter.RenderTable(headers, rows, aligns)))

	// Shift rollup line.
	agg := sess.ShiftPlan(shift)
	capStyle := formatter.CoverageStyle(agg.PlannedCapacity, agg.ExpectedVolume)
	b.WriteString(fmt.Sprintf("\n  %s %s  %s %s  %s %s  %s %s\n",
		formatter.Dim("volume"), formatter.Bold(formatter.FormatUnits(agg.ExpectedVolume)),
		formatter.Dim("planned"), formatter.FormatHours(agg.PlannedHours),
		formatter.Dim("required"), formatter.FormatHours(agg.RequiredHours),
		formatter.Dim("capacity"), capStyle.Render(formatter.FormatUnits(agg.PlannedCapacity)),
	))
	return b.String()
}

// ── trajectory tab ───────────────────────────────────────────────────────────

func (m dashboardModel) renderTrajectoryTab() string {
	sess := m.app.Session
	return indent(formatter.FormatTrajectory(sess.Snapshot().Ledger.Backlog(), sess.Trajectory()))
}

// ── ledger tab ───────────────────────────────────────────────────────────────

func (m dashboardModel) renderLedgerTab() string {
	snap := m.app.Session.Snapshot()

	var b strings.Builder
	b.WriteString(indent(formatter.FormatLedger(snap.Ledger)))

	if trends := renderTrends(snap.Trends); trends != "" {
		b.WriteString("\n")
		b.WriteString(indent(trends))
	}

	perf := snap.Performance
	if perf.CurrentDayTotal != 0 || perf.NextDayTotal != 0 {
		b.WriteString("\n  " + formatter.StyleHeader.Render("MODEL TOTALS") + "\n")
		b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s\n",
			formatter.Dim("today"), formatter.FormatUnits(perf.CurrentDayTotal),
			formatter.Dim("tomorrow"), formatter.FormatUnits(perf.NextDayTotal),
			formatter.Dim("network"), formatter.FormatUnits(perf.NetworkTarget),
		))
	}
	return b.String()
}

func renderTrends(t domain.TrendTable) string {
	if len(t.Daily) == 0 {
		return ""
	}

	keys := make([]domain.TrendKey, 0, len(t.Daily))
	for k := range t.Daily {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Day != keys[j].Day {
			return keys[i].Day < keys[j].Day
		}
		return keys[i].Window < keys[j].Window
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{
			k.Day,
			fmt.Sprintf("last %d", k.Window),
			formatter.FormatUnits(t.Daily[k]),
		})
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("DAILY TRENDS") + "\n")
	b.WriteString(formatter.RenderTable(
		[]string{"DAY", "WINDOW", "AVG VOLUME"},
		rows,
		[]formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight},
	))
	return b.String()
}

// indent prefixes every non-empty line with two spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "\n")
}
