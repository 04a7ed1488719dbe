// Package palette holds the crossfading palette scenes.
package palette

import "github.com/coreman2200/plasmaglow/internal/render"

// Scene walks the strip through a fixed palette, one fadeMS per entry.
type Scene struct {
	name   string
	colors render.Palette
	fadeMS float64
}

func New(name string, colors render.Palette, fadeMS float64) *Scene {
	return &Scene{name: name, colors: colors, fadeMS: fadeMS}
}

func (s *Scene) Name() string { return s.name }

func (s *Scene) Colors() render.Palette { return s.colors }

func (s *Scene) FadeMS() float64 { return s.fadeMS }

// CycleMS is the time for the whole palette to come back around.
func (s *Scene) CycleMS() float64 { return float64(len(s.colors)) * s.fadeMS }

func (s *Scene) Render(px render.Pixels, tms int64, brightness float64) {
	render.FadePalette(px, tms, brightness, s.colors, s.fadeMS)
}

func WarmHearth() *Scene {
	return New("warm hearth", render.Palette{
		{R: 255, G: 180, B: 120}, {R: 255, G: 140, B: 60}, {R: 220, G: 80, B: 30}, {R: 255, G: 200, B: 100}, {R: 255, G: 100, B: 80},
		{R: 200, G: 60, B: 20}, {R: 255, G: 160, B: 70}, {R: 180, G: 50, B: 30}, {R: 255, G: 120, B: 90}, {R: 255, G: 200, B: 140},
	}, 25000)
}

func IcyForest() *Scene {
	return New("icy forest", render.Palette{
		{R: 180, G: 220, B: 255}, {R: 140, G: 200, B: 255}, {R: 100, G: 180, B: 240}, {R: 80, G: 160, B: 200}, {R: 160, G: 220, B: 255},
		{R: 120, G: 180, B: 220}, {R: 60, G: 140, B: 200}, {R: 200, G: 240, B: 255}, {R: 140, G: 220, B: 240}, {R: 100, G: 160, B: 220},
	}, 30000)
}

func RoseGarden() *Scene {
	return New("rose garden", render.Palette{
		{R: 255, G: 180, B: 200}, {R: 255, G: 120, B: 160}, {R: 220, G: 80, B: 120}, {R: 255, G: 100, B: 140}, {R: 255, G: 160, B: 190},
		{R: 180, G: 60, B: 90}, {R: 255, G: 200, B: 210}, {R: 220, G: 140, B: 160}, {R: 255, G: 120, B: 150}, {R: 200, G: 80, B: 110},
	}, 28000)
}

func NeonCandy() *Scene {
	return New("neon candy", render.Palette{
		{R: 255, G: 60, B: 180}, {R: 80, G: 220, B: 255}, {R: 255, G: 255, B: 120}, {R: 180, G: 100, B: 255}, {R: 255, G: 100, B: 100},
		{R: 100, G: 255, B: 180}, {R: 255, G: 180, B: 60}, {R: 120, G: 120, B: 255}, {R: 255, G: 80, B: 220}, {R: 140, G: 255, B: 140},
	}, 20000)
}

// All returns the palette scenes in display order.
func All() []*Scene {
	return []*Scene{WarmHearth(), IcyForest(), RoseGarden(), NeonCandy()}
}
