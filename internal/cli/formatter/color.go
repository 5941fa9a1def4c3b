package formatter

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders text in the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// Bold renders text in the bold foreground style.
func Bold(s string) string { return StyleBold.Render(s) }

// SourceBadge renders a colored badge for where the active snapshot came
// from: "live", "cache", or "default".
func SourceBadge(source string) string {
	switch source {
	case "live":
		return StyleGreen.Render("● LIVE")
	case "cache":
		return StyleYellow.Render("● CACHED")
	default:
		return StyleRed.Render("● NO DATA")
	}
}

// CoverageStyle colors a planned-vs-required hours ratio: green when the
// plan covers the forecast, yellow when it is close, red when short.
func CoverageStyle(planned, required float64) lipgloss.Style {
	if required <= 0 {
		return StyleDim
	}
	ratio := planned / required
	switch {
	case ratio >= 1:
		return StyleGreen
	case ratio >= 0.85:
		return StyleYellow
	default:
		return StyleRed
	}
}
