package dgp

import "math"

// roundHalfUp implements the kernel's single frozen rounding rule: round
// half up to the nearest integer, i.e. floor(x + 0.5). For non-negative x
// this coincides with "round half away from zero" (round(0.5) == 1); for
// negative x it rounds toward positive infinity rather than away from zero
// (round(-0.5) == 0), matching the property fixed in spec.md §8.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// roundTo2 rounds x to two decimal places using the same half-up rule.
func roundTo2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// clampScore clamps an integer score into [0, 100].
func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clampUnit clamps a float into [0, 1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
