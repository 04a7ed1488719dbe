package render

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 clamps x in [0,1].
func Clamp01(x float64) float64 { return Clamp(x, 0, 1) }

// Ease is smootherstep: 6t^5 - 15t^4 + 10t^3.
// Zero first and second derivative at both ends, so crossfades don't show a seam.
func Ease(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Mix linearly interpolates a..b. t is not clamped.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
