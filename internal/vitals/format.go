package vitals

import (
	"fmt"
	"strings"
	"time"
)

// duration units from largest to smallest. A year is 365 days and a
// month is not a unit: weeks avoid the ambiguity.
var durationUnits = []struct {
	label string
	d     time.Duration
}{
	{"y", 365 * 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

// FormatDuration renders a duration in at most two units, largest
// first: "1y 3w", "2d 5h", "45s". Sub-second and negative values
// (clock skew) render as "0s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	parts := make([]string, 0, 2)
	for _, unit := range durationUnits {
		if d < unit.d {
			continue
		}
		n := d / unit.d
		parts = append(parts, fmt.Sprintf("%d%s", n, unit.label))
		if len(parts) == 2 {
			break
		}
		d -= n * unit.d
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
