package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls how a table column is padded.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders an aligned table with a header separator line.
// Headers use the Header style. Column widths come from the widest cell in
// each column, measured by visible width so styled cells line up. aligns
// may be nil (all left) or shorter than the column count; missing entries
// default to left.
func RenderTable(headers []string, rows [][]string, aligns []Align) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	align := func(i int) Align {
		if i < len(aligns) {
			return aligns[i]
		}
		return AlignLeft
	}

	const colGap = 2

	var b strings.Builder

	writeCell := func(cell string, i int, styledWidth int) {
		pad := widths[i] - styledWidth
		if pad < 0 {
			pad = 0
		}
		if align(i) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}

	for i, h := range headers {
		writeCell(StyleHeader.Render(h), i, lipgloss.Width(h))
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(cell, i, lipgloss.Width(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}
