package ring

import "strconv"

// formatNumber prints v with the fewest digits that round-trip.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
