package formatter

import (
	"fmt"
	"math"
	"strings"
)

// Unit counts beyond this are garbage input; the clamp keeps the int64
// conversion below defined for any float64.
const maxWholeUnits = 1e15

// FormatUnits renders a unit count with thousands separators, rounded to
// the nearest whole unit: 12340.7 becomes "12,341".
func FormatUnits(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Min(math.Max(v, -maxWholeUnits), maxWholeUnits)
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatHours renders labor hours with one decimal: "12.5h".
func FormatHours(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%.1fh", v)
}

// FormatRate renders a throughput rate in units per labor hour.
func FormatRate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%s/h", FormatUnits(v))
}
