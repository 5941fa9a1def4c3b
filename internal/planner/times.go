package planner

import (
	"time"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// NoDate is the sentinel returned by OffsetDate when a calendar date cannot
// be resolved. Consumers must check for it before deriving anything from the
// result; a quarter anchored on NoDate contributes zero volume.
const NoDate = "N/A"

const dateLayout = "2006-01-02"

// timestampLayouts are the wire forms the forecasting pipeline emits.
// The extended series uses "2006-01-02T15:04"; older blocks use a space
// separator and sometimes carry seconds.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a series timestamp. It reports false instead of
// failing hard; callers treat an unparseable point as "no data".
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OffsetDate shifts a YYYY-MM-DD date string by a number of calendar days.
// Empty or malformed input yields NoDate.
func OffsetDate(date string, days int) string {
	if date == "" {
		return NoDate
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return NoDate
	}
	return t.AddDate(0, 0, days).Format(dateLayout)
}

// ValueAtHour returns the cumulative value of the series point falling on
// the given date at the given local hour, or 0 when no such point exists.
// Zero is deliberate: "no data yet" means "no volume yet", which keeps the
// delta arithmetic downstream free of nil checks.
func ValueAtHour(series []domain.PredictionPoint, date string, hour int) float64 {
	if date == NoDate {
		return 0
	}
	for _, p := range series {
		t, ok := ParseTimestamp(p.Time)
		if !ok {
			continue
		}
		if t.Format(dateLayout) == date && t.Hour() == hour {
			return p.Workable
		}
	}
	return 0
}
