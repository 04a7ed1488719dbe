package sunset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/plasmaglow/internal/render"
)

func TestKeyframesAtSegmentStarts(t *testing.T) {
	s := New()
	buf := render.NewBuffer(1)
	for i, key := range Keys {
		tms := int64(i * LoopMS / len(Keys))
		s.Render(buf, tms, 1)
		// single pixel: pos 0 pulls hue down by 0.02 and keeps full value envelope
		assert.InDelta(t, render.WrapHue(key.H-0.02), buf[0].H, 1e-9, "key %d", i)
		assert.InDelta(t, key.S, buf[0].S, 1e-9, "key %d", i)
	}
}

func TestLoopsEveryThirtySeconds(t *testing.T) {
	s := New()
	a, b := render.NewBuffer(20), render.NewBuffer(20)
	s.Render(a, 4321, 0.45)
	s.Render(b, 4321+LoopMS, 0.45)
	for i := range a {
		assert.InDelta(t, a[i].H, b[i].H, 1e-9)
		assert.InDelta(t, a[i].S, b[i].S, 1e-9)
	}
}

func TestValuesStayInRangeAndScaleWithBrightness(t *testing.T) {
	s := New()
	for tms := int64(0); tms < LoopMS; tms += 997 {
		lo, hi := render.NewBuffer(50), render.NewBuffer(50)
		s.Render(lo, tms, 0.18)
		s.Render(hi, tms, 0.45)
		for i := range lo {
			for _, p := range []render.Pixel{lo[i], hi[i]} {
				assert.Equal(t, render.HSV, p.Model)
				assert.True(t, p.H >= 0 && p.H < 1)
				assert.True(t, p.V >= 0 && p.V <= 1)
			}
			assert.GreaterOrEqual(t, hi[i].V, lo[i].V)
			assert.Equal(t, lo[i].H, hi[i].H)
		}
	}
}

func TestGradientDimsTowardFarEnd(t *testing.T) {
	s := New()
	buf := render.NewBuffer(50)
	s.Render(buf, 0, 1)
	assert.Greater(t, buf[0].V, buf[49].V)
}
