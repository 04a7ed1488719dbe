package render

import "math"

// ColorModel tells which representation a Pixel currently holds.
type ColorModel uint8

const (
	HSV ColorModel = iota
	RGBModel
)

// RGB is a device color with 0..255 channels.
type RGB struct{ R, G, B uint8 }

// Pixel holds either an HSV triple (unit interval) or an RGB triple.
type Pixel struct {
	Model   ColorModel
	H, S, V float64
	R, G, B uint8
}

// Pixels is the write side of a strip. Scenes only ever see this.
type Pixels interface {
	Len() int
	SetHSV(i int, h, s, v float64)
	SetRGB(i int, r, g, b uint8)
}

// Scene maps elapsed milliseconds and a brightness scalar onto the pixels.
// Render must not block.
type Scene interface {
	Name() string
	Render(px Pixels, tms int64, brightness float64)
}

// Buffer is the in-memory pixel buffer mirroring the strip. Its length is fixed
// at construction.
type Buffer []Pixel

func NewBuffer(n int) Buffer { return make(Buffer, n) }

func (b Buffer) Len() int { return len(b) }

// SetHSV stores an HSV color. Hue wraps modulo 1; s and v are clamped.
func (b Buffer) SetHSV(i int, h, s, v float64) {
	if i < 0 || i >= len(b) {
		return
	}
	b[i] = Pixel{Model: HSV, H: WrapHue(h), S: Clamp01(s), V: Clamp01(v)}
}

func (b Buffer) SetRGB(i int, r, g, bl uint8) {
	if i < 0 || i >= len(b) {
		return
	}
	b[i] = Pixel{Model: RGBModel, R: r, G: g, B: bl}
}

// Clear zeroes every pixel.
func (b Buffer) Clear() {
	for i := range b {
		b[i] = Pixel{}
	}
}

// FlushTo copies the buffer into another Pixels sink, keeping each pixel's model.
func (b Buffer) FlushTo(dst Pixels) {
	n := min(len(b), dst.Len())
	for i := 0; i < n; i++ {
		p := b[i]
		if p.Model == RGBModel {
			dst.SetRGB(i, p.R, p.G, p.B)
		} else {
			dst.SetHSV(i, p.H, p.S, p.V)
		}
	}
}

// WrapHue folds h into [0,1).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}

func toByte(x float64) uint8 {
	return uint8(math.Round(255 * Clamp01(x)))
}
