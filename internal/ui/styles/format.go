package styles

import (
	"fmt"
	"time"
)

// FormatDuration renders a sound length as m:ss, rounded to the nearest
// second. Zero and negative durations render as 0:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatToggleDot returns a filled dot for on, hollow for off.
func FormatToggleDot(on bool) string {
	if on {
		return "●"
	}
	return "○"
}

// FormatKeycap renders a bound key as [k].
func FormatKeycap(key rune) string {
	return fmt.Sprintf("[%c]", key)
}
