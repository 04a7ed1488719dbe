// Package sunset drifts through peach, amber, rose and wine with a gentle
// gradient along the strip.
package sunset

import (
	"math"

	"github.com/coreman2200/plasmaglow/internal/layout"
	"github.com/coreman2200/plasmaglow/internal/render"
	"github.com/coreman2200/plasmaglow/internal/sequence"
)

const LoopMS = 30000

// Keys are peach, amber, rose and wine.
var Keys = []sequence.Key{
	{H: 0.04, S: 0.40, V: 0.38},
	{H: 0.10, S: 0.85, V: 0.55},
	{H: 0.95, S: 0.60, V: 0.45},
	{H: 0.98, S: 0.88, V: 0.28},
}

type Scene struct {
	loop sequence.Loop
}

func New() *Scene {
	return &Scene{loop: sequence.Loop{Keys: Keys, PeriodMS: LoopMS, Ease: sequence.Cubic}}
}

func (s *Scene) Name() string { return "sunset" }

func (s *Scene) Render(px render.Pixels, tms int64, brightness float64) {
	k := s.loop.Eval(tms)
	v := k.V * brightness
	for i, pos := range layout.Positions(px.Len()) {
		h := render.WrapHue(k.H + 0.02*math.Sin((pos-0.5)*math.Pi))
		vv := v * (0.88 + 0.12*math.Cos(pos*math.Pi))
		vv *= 0.97 + 0.03*math.Sin(float64(tms)/900.0+float64(i)*0.11)
		px.SetHSV(i, h, k.S, render.Clamp01(vv))
	}
}
