package heartbeat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/plasmaglow/internal/render"
)

func TestBeatPeriodAt50BPM(t *testing.T) {
	s := New(50)
	assert.Equal(t, 1200.0, s.BeatMS())
	assert.Equal(t, 1200.0, New(0).BeatMS(), "non-positive bpm falls back to default")
}

func TestSilentWindows(t *testing.T) {
	s := New(50)
	for _, base := range []int64{0, 3000, 30000} {
		for p := int64(240); p < 1200; p += 10 {
			assert.Zero(t, s.Amplitude(base+p), "phase %d", p)
		}
		for p := int64(1440); p < 3000; p += 10 {
			assert.Zero(t, s.Amplitude(base+p), "phase %d", p)
		}
	}
}

func TestPulsesPeakAtCenters(t *testing.T) {
	s := New(50)
	assert.InDelta(t, 1.0, s.Amplitude(120), 1e-9)
	assert.InDelta(t, 1.0, s.Amplitude(1320), 1e-9)
	assert.Greater(t, s.Amplitude(100), 0.9)
	assert.Greater(t, s.Amplitude(1340), 0.9)
	assert.Greater(t, s.Amplitude(3120), 0.99)
}

func TestPulseFadesDownTheStrip(t *testing.T) {
	s := New(50)
	buf := render.NewBuffer(50)
	s.Render(buf, 120, 1)
	for i := 1; i < len(buf); i++ {
		assert.LessOrEqual(t, buf[i].V, buf[i-1].V)
	}
	assert.InDelta(t, 0.07+0.35, buf[0].V, 1e-9)

	s.Render(buf, 600, 1)
	for _, p := range buf {
		assert.InDelta(t, 0.07, p.V, 1e-9)
		assert.Equal(t, 0.85, p.S)
	}
}

func TestValuesInRangeAndMonotonicInBrightness(t *testing.T) {
	s := New(72)
	for tms := int64(0); tms < 6000; tms += 13 {
		lo, hi := render.NewBuffer(9), render.NewBuffer(9)
		s.Render(lo, tms, 0.3)
		s.Render(hi, tms, 0.45)
		for i := range lo {
			assert.True(t, hi[i].V >= 0 && hi[i].V <= 1)
			assert.GreaterOrEqual(t, hi[i].V, lo[i].V)
			assert.Equal(t, lo[i].H, hi[i].H)
		}
	}
}
