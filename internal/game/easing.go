package game

import "math"

// EaseOutCubic decelerates to t=1. Input is clamped to [0,1].
func EaseOutCubic(t float64) float64 {
	t = clampF(t, 0, 1)
	u := 1 - t
	return 1 - u*u*u
}

// EaseOutElastic overshoots past 1 and settles with a decaying oscillation.
// Returns exactly 0 at t=0 and 1 at t=1.
func EaseOutElastic(t float64) float64 {
	t = clampF(t, 0, 1)
	if t == 0 || t == 1 {
		return t
	}
	const c4 = (2 * math.Pi) / 3
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}
