package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = Palette{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}

func renderPalette(n int, tms int64, b float64, p Palette, fade float64) Buffer {
	buf := NewBuffer(n)
	FadePalette(buf, tms, b, p, fade)
	return buf
}

func TestFadePaletteIsPeriodic(t *testing.T) {
	const fade = 1000.0
	cycle := int64(len(testPalette)) * int64(fade)
	for _, tms := range []int64{0, 1, 250, 999, 1500, 2750, 12345} {
		a := renderPalette(5, tms, 0.8, testPalette, fade)
		b := renderPalette(5, tms+cycle, 0.8, testPalette, fade)
		assert.Equal(t, a, b, "t=%d", tms)
	}
}

func TestFadePaletteSingleEntryIsStatic(t *testing.T) {
	p := Palette{{180, 90, 30}}
	for _, b := range []float64{1, 0.5, 0} {
		for _, tms := range []int64{0, 777, 50000} {
			buf := renderPalette(7, tms, b, p, 2500)
			for _, px := range buf {
				assert.Equal(t, RGBModel, px.Model)
				assert.Equal(t, toByte(180.0/255*b), px.R)
				assert.Equal(t, toByte(90.0/255*b), px.G)
				assert.Equal(t, toByte(30.0/255*b), px.B)
			}
		}
	}
	full := renderPalette(1, 42, 1, p, 2500)
	assert.Equal(t, Pixel{Model: RGBModel, R: 180, G: 90, B: 30}, full[0])
}

func TestFadePaletteHitsEntriesAtBoundaries(t *testing.T) {
	// pixel 0 has no offset: at multiples of fade it shows the entry exactly
	buf := renderPalette(3, 0, 1, testPalette, 1000)
	assert.Equal(t, Pixel{Model: RGBModel, R: 255}, buf[0])
	buf = renderPalette(3, 1000, 1, testPalette, 1000)
	assert.Equal(t, Pixel{Model: RGBModel, G: 255}, buf[0])
	// last pixel is one full fade ahead
	assert.Equal(t, Pixel{Model: RGBModel, B: 255}, buf[2])
}

func TestFadePaletteMidpointUsesEase(t *testing.T) {
	buf := renderPalette(1, 500, 1, testPalette, 1000)
	// Ease(0.5) == 0.5, so red and green meet halfway
	assert.Equal(t, uint8(128), buf[0].R)
	assert.Equal(t, uint8(128), buf[0].G)
	assert.Equal(t, uint8(0), buf[0].B)
}

func TestFadePaletteBrightnessMonotonic(t *testing.T) {
	for _, tms := range []int64{0, 333, 1777, 2999} {
		prev := renderPalette(6, tms, 0, testPalette, 1000)
		for b := 0.05; b <= 1.0001; b += 0.05 {
			cur := renderPalette(6, tms, b, testPalette, 1000)
			for i := range cur {
				assert.GreaterOrEqual(t, cur[i].R, prev[i].R)
				assert.GreaterOrEqual(t, cur[i].G, prev[i].G)
				assert.GreaterOrEqual(t, cur[i].B, prev[i].B)
			}
			prev = cur
		}
	}
}

func TestFadePaletteIgnoresDegenerateInput(t *testing.T) {
	buf := renderPalette(2, 0, 1, nil, 1000)
	require.Len(t, buf, 2)
	assert.Equal(t, Pixel{}, buf[0])

	buf = renderPalette(2, 0, 1, testPalette, 0)
	assert.Equal(t, Pixel{}, buf[1])
}
