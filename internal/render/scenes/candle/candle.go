// Package candle renders a warm candlelight flicker with rare ember flashes.
package candle

import (
	"math"
	"math/rand"

	"github.com/coreman2200/plasmaglow/internal/render"
)

const (
	baseHue     = 30.0 / 360.0
	baseValue   = 0.22
	noise       = 0.02
	fastWeight  = 0.35
	flickerGain = 0.35

	// EmberChance is the per-pixel, per-frame probability of an ember flash.
	EmberChance = 0.002
	emberHue    = 0.95
	emberSat    = 0.6
	emberFloor  = 0.35
)

type Scene struct {
	name  string
	phase []float64
	rng   *rand.Rand
}

// New seeds one static phase offset in [0,10) per pixel. rng also drives the
// per-frame noise and embers, so a fixed seed gives a reproducible flicker.
func New(n int, rng *rand.Rand) *Scene {
	s := &Scene{name: "candlelight", phase: make([]float64, n), rng: rng}
	for i := range s.phase {
		s.phase[i] = rng.Float64() * 10
	}
	return s
}

func (s *Scene) Name() string { return s.name }

// Phases returns the per-pixel offsets drawn at construction.
func (s *Scene) Phases() []float64 { return s.phase }

func (s *Scene) Render(px render.Pixels, tms int64, brightness float64) {
	t := float64(tms) / 1000
	n := min(px.Len(), len(s.phase))
	for i := 0; i < n; i++ {
		p := s.phase[i]
		fi := float64(i)
		slow := 0.5 + 0.5*math.Sin(t*0.9+fi*0.07+p)
		fast := 0.5 + 0.5*math.Sin(t*7.0+fi*0.31+p*1.7)
		flicker := (slow*(1-fastWeight)+fast*fastWeight)*flickerGain + (s.rng.Float64()*2-1)*noise

		v := render.Clamp01(baseValue+flicker) * brightness
		h := render.WrapHue(baseHue + 0.011*math.Sin(t*0.5+fi*0.05))
		sat := render.Clamp01(0.75 + 0.1*math.Sin(t*0.8+fi*0.19))

		// Embers raise the floor for this frame only; a brighter flicker wins.
		if s.rng.Float64() < EmberChance {
			h, sat, v = emberHue, emberSat, math.Max(v, emberFloor*brightness)
		}
		px.SetHSV(i, h, sat, v)
	}
}
