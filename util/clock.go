package util

import (
	"fmt"
	"math"
)

// FormatClock renders a position in seconds as zero-padded "mm:ss".
// Minutes are not wrapped into hours, so long media renders as e.g. "125:07".
// Negative and non-finite inputs render as "00:00".
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	minutes := int64(math.Floor(seconds / 60))
	secs := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
