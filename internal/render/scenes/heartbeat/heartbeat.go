// Package heartbeat renders a soft double thump that fades down the strip.
package heartbeat

import (
	"math"

	"github.com/coreman2200/plasmaglow/internal/layout"
	"github.com/coreman2200/plasmaglow/internal/render"
)

const (
	DefaultBPM = 50

	pulseWidthMS = 180.0
	spreadMS     = 140.0
	falloffMS    = 400.0
	baseValue    = 0.07
	pulseGain    = 0.35
	baseHue      = 0.96
	baseSat      = 0.85
)

type Scene struct {
	bpm    float64
	beatMS float64
}

// New returns a heartbeat at bpm beats per minute. Non-positive bpm falls back
// to DefaultBPM.
func New(bpm float64) *Scene {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	return &Scene{bpm: bpm, beatMS: 60000 / bpm}
}

func (s *Scene) Name() string { return "heartbeat" }

// BeatMS is the length of one beat.
func (s *Scene) BeatMS() float64 { return s.beatMS }

// Amplitude is the pulse envelope at tms.
func (s *Scene) Amplitude(tms int64) float64 {
	return Pulse(math.Mod(float64(tms), s.beatMS*2.5), s.beatMS)
}

// Pulse evaluates the biphasic envelope at a phase within the 2.5-beat cycle.
// The first thump is centered at 10% of the beat, the second at 110%; every
// other phase is silent.
func Pulse(phaseMS, beatMS float64) float64 {
	switch {
	case phaseMS < 0:
		return 0
	case phaseMS < beatMS*0.2:
		return env(phaseMS - beatMS*0.1)
	case phaseMS < beatMS*1.0:
		return 0
	case phaseMS < beatMS*1.2:
		return env(phaseMS - beatMS*1.1)
	default:
		return 0
	}
}

func env(xMS float64) float64 {
	x := xMS / pulseWidthMS
	return math.Exp(-x * x * 2.5)
}

func (s *Scene) Render(px render.Pixels, tms int64, brightness float64) {
	a := s.Amplitude(tms)
	n := px.Len()
	for i := 0; i < n; i++ {
		offset := layout.Position(i, n) * spreadMS
		v := render.Clamp01(baseValue+pulseGain*a*math.Exp(-offset/falloffMS)) * brightness
		h := render.WrapHue(baseHue + 0.003*math.Sin((float64(tms)+offset)/1500.0))
		px.SetHSV(i, h, baseSat, v)
	}
}
