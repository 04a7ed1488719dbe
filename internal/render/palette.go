package render

import (
	"math"

	"github.com/coreman2200/plasmaglow/internal/layout"
)

// Palette is an ordered list of colors; order defines the crossfade sequence.
type Palette []RGB

// FadePalette walks every pixel through the palette. Each pixel is shifted by
// up to one fadeMS along the strip so the fade travels instead of pulsing the
// whole strip at once. A full cycle lasts len(palette)*fadeMS.
func FadePalette(px Pixels, tms int64, brightness float64, palette Palette, fadeMS float64) {
	n := len(palette)
	if n < 1 || fadeMS <= 0 {
		return
	}
	cycle := float64(n) * fadeMS
	pos := layout.Positions(px.Len())
	for idx, k := range pos {
		t := math.Mod(float64(tms)+k*fadeMS, cycle)
		if t < 0 {
			t += cycle
		}
		fadePos := t / fadeMS
		whole := math.Floor(fadePos)
		i := int(whole) % n
		j := (i + 1) % n
		f := Ease(fadePos - whole)

		a, b := palette[i], palette[j]
		px.SetRGB(idx,
			toByte(Mix(float64(a.R)/255, float64(b.R)/255, f)*brightness),
			toByte(Mix(float64(a.G)/255, float64(b.G)/255, f)*brightness),
			toByte(Mix(float64(a.B)/255, float64(b.B)/255, f)*brightness),
		)
	}
}
