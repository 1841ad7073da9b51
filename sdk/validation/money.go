package validation

import "math"

// ValidCost reports whether v is a usable non-negative monetary amount.
// NaN and infinities are rejected along with negative values.
func ValidCost(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= 0
}
