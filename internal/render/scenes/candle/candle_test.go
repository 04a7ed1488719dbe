package candle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/plasmaglow/internal/render"
)

// zeroSource makes every Float64 draw return 0, forcing an ember on each pixel.
type zeroSource struct{}

func (zeroSource) Int63() int64 { return 0 }
func (zeroSource) Seed(int64)   {}

func TestPhasesSeededOnceInRange(t *testing.T) {
	s := New(50, rand.New(rand.NewSource(7)))
	require.Len(t, s.Phases(), 50)
	before := append([]float64(nil), s.Phases()...)
	for _, p := range before {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, 10.0)
	}

	buf := render.NewBuffer(50)
	for tms := int64(0); tms < 2000; tms += 16 {
		s.Render(buf, tms, 0.3)
	}
	assert.Equal(t, before, s.Phases(), "phases must not change across frames")
}

func TestValueRangeBeforeBrightness(t *testing.T) {
	s := New(40, rand.New(rand.NewSource(1)))
	buf := render.NewBuffer(40)
	for tms := int64(0); tms < 20000; tms += 37 {
		s.Render(buf, tms, 1)
		for _, p := range buf {
			assert.Equal(t, render.HSV, p.Model)
			assert.GreaterOrEqual(t, p.V, 0.20-1e-9)
			if p.H != emberHue {
				assert.LessOrEqual(t, p.V, 0.59+1e-9)
				assert.InDelta(t, baseHue, p.H, 0.012)
			}
			assert.GreaterOrEqual(t, p.S, 0.0)
			assert.LessOrEqual(t, p.S, 1.0)
		}
	}
}

func TestBrightnessIsMonotonic(t *testing.T) {
	levels := []float64{0, 0.18, 0.30, 0.45, 1}
	for _, tms := range []int64{0, 1234, 98765} {
		var prev render.Buffer
		for _, b := range levels {
			// identical seeds give identical noise and ember draws
			s := New(30, rand.New(rand.NewSource(99)))
			buf := render.NewBuffer(30)
			s.Render(buf, tms, b)
			if prev != nil {
				for i := range buf {
					assert.Equal(t, prev[i].H, buf[i].H)
					assert.Equal(t, prev[i].S, buf[i].S)
					assert.GreaterOrEqual(t, buf[i].V, prev[i].V)
				}
			}
			prev = buf
		}
	}
}

func TestEmberRaisesFloorForOneFrame(t *testing.T) {
	s := New(3, rand.New(zeroSource{}))
	buf := render.NewBuffer(3)
	s.Render(buf, 0, 0.5)
	for _, p := range buf {
		assert.Equal(t, emberHue, p.H)
		assert.Equal(t, emberSat, p.S)
		assert.GreaterOrEqual(t, p.V, emberFloor*0.5)
	}

	// swap in a source that never embers: the next frame is plain flicker
	s.rng = rand.New(rand.NewSource(3))
	for tms := int64(16); tms < 1600; tms += 16 {
		s.Render(buf, tms, 0.5)
		for _, p := range buf {
			if p.H == emberHue {
				continue
			}
			assert.InDelta(t, baseHue, p.H, 0.012)
		}
	}
}
