package display

import (
	"fmt"
	"strings"

	"github.com/backmassage/mkvresort/internal/probe"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatStreamCounts renders a classification as "video:1 audio:2
// subtitles:0" in group order.
func FormatStreamCounts(c probe.Classification) string {
	parts := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		parts[i] = fmt.Sprintf("%s:%d", g.Type, g.Count())
	}
	return strings.Join(parts, " ")
}

// FormatTrackOrder renders a flat id sequence for log output, e.g.
// "[0 2 1]".
func FormatTrackOrder(order []int64) string {
	return fmt.Sprint(order)
}
