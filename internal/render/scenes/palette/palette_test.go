package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/plasmaglow/internal/render"
)

func TestPaletteScenes(t *testing.T) {
	cases := []struct {
		scene  *Scene
		name   string
		fadeMS float64
		first  render.RGB
	}{
		{WarmHearth(), "warm hearth", 25000, render.RGB{R: 255, G: 180, B: 120}},
		{IcyForest(), "icy forest", 30000, render.RGB{R: 180, G: 220, B: 255}},
		{RoseGarden(), "rose garden", 28000, render.RGB{R: 255, G: 180, B: 200}},
		{NeonCandy(), "neon candy", 20000, render.RGB{R: 255, G: 60, B: 180}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.scene
			assert.Equal(t, tc.name, s.Name())
			require.Len(t, s.Colors(), 10)
			assert.Equal(t, tc.fadeMS, s.FadeMS())
			assert.Equal(t, 10*tc.fadeMS, s.CycleMS())

			buf := render.NewBuffer(1)
			s.Render(buf, 0, 1)
			assert.Equal(t, render.RGBModel, buf[0].Model)
			assert.Equal(t, tc.first, render.RGB{R: buf[0].R, G: buf[0].G, B: buf[0].B})
		})
	}
}

func TestPaletteSceneRepeatsEachCycle(t *testing.T) {
	s := NeonCandy()
	a, b := render.NewBuffer(50), render.NewBuffer(50)
	s.Render(a, 12345, 0.3)
	s.Render(b, 12345+int64(s.CycleMS()), 0.3)
	assert.Equal(t, a, b)
}

func TestAllKeepsDisplayOrder(t *testing.T) {
	var names []string
	for _, s := range All() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"warm hearth", "icy forest", "rose garden", "neon candy"}, names)
}
