package layout

// Position maps pixel i of an n-pixel strip onto [0,1]. A single-pixel strip
// sits at 0.
func Position(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Positions returns Position for every index of an n-pixel strip.
func Positions(n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = Position(i, n)
	}
	return out
}
