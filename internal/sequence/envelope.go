package sequence

import (
	"math"

	"github.com/coreman2200/plasmaglow/internal/render"
)

// Ease names the curve applied inside each segment.
type Ease string

const (
	Linear Ease = "linear"
	Smooth Ease = "smooth" // smoothstep 3x^2 - 2x^3
	Cubic  Ease = "cubic"  // smootherstep
)

func (e Ease) apply(x float64) float64 {
	switch e {
	case Smooth:
		return x * x * (3 - 2*x)
	case Cubic:
		return render.Ease(x)
	default:
		return x
	}
}

// Key is one HSV keyframe.
type Key struct {
	H, S, V float64
}

// Loop spreads its keys evenly over PeriodMS and wraps from the last key back
// to the first.
type Loop struct {
	Keys     []Key
	PeriodMS float64
	Ease     Ease
}

// Eval returns the interpolated key at tms. Hue is mixed linearly (not along
// the short arc) and then wrapped into [0,1).
// With no keys it returns the zero Key; with one key, that key.
func (l Loop) Eval(tms int64) Key {
	n := len(l.Keys)
	if n == 0 {
		return Key{}
	}
	if n == 1 || l.PeriodMS <= 0 {
		return l.Keys[0]
	}
	ph := math.Mod(float64(tms), l.PeriodMS)
	if ph < 0 {
		ph += l.PeriodMS
	}
	pos := ph / l.PeriodMS * float64(n)
	seg := int(pos) % n
	next := (seg + 1) % n
	u := l.Ease.apply(pos - math.Floor(pos))

	a, b := l.Keys[seg], l.Keys[next]
	return Key{
		H: render.WrapHue(render.Mix(a.H, b.H, u)),
		S: render.Mix(a.S, b.S, u),
		V: render.Mix(a.V, b.V, u),
	}
}
