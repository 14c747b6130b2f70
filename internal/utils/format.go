package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Duration formats an elapsed time for run summaries, e.g. "0s", "5.2s",
// "3m5.2s" or "2h15m".
func Duration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "0s"
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d.Minutes())
		return fmt.Sprintf("%dm%.1fs", minutes, d.Seconds()-float64(minutes*60))
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// Rate formats count items over d as an SI-prefixed per-second rate
func Rate(count int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return humanize.SIWithDigits(float64(count)/d.Seconds(), 2, "/s")
}
