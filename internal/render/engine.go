package render

import (
	"errors"
	"fmt"
	"time"
)

// Sink abstracts the LED transport: pixel writes plus a synchronous latch.
type Sink interface {
	Pixels
	Show() error
}

var ErrPixelCount = errors.New("pixel count mismatch")

// Engine renders frames into its Buffer with the active Scene, then flushes
// the buffer to the sink and latches it. Show returns before the next frame
// starts building, so frames never tear.
type Engine struct {
	Buf Buffer
	Out Sink

	// metrics (last durations in ms)
	Last struct {
		RenderMS float64
		LatchMS  float64
		TotalMS  float64
	}
}

// NewEngine allocates an n-pixel buffer. n must match the sink's pixel count.
func NewEngine(n int, out Sink) (*Engine, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid pixel count %d", n)
	}
	if out != nil && out.Len() != n {
		return nil, fmt.Errorf("%w: buffer %d, sink %d", ErrPixelCount, n, out.Len())
	}
	return &Engine{Buf: NewBuffer(n), Out: out}, nil
}

// RenderOnce renders a single frame at tms milliseconds.
func (e *Engine) RenderOnce(s Scene, tms int64, brightness float64) error {
	start := time.Now()
	if s != nil {
		s.Render(e.Buf, tms, brightness)
	}
	e.Last.RenderMS = msSince(start)

	latchStart := time.Now()
	err := e.latch()
	e.Last.LatchMS = msSince(latchStart)
	e.Last.TotalMS = msSince(start)
	return err
}

// Fill sets every pixel to one HSV color and latches.
func (e *Engine) Fill(h, s, v float64) error {
	for i := range e.Buf {
		e.Buf.SetHSV(i, h, s, v)
	}
	return e.latch()
}

// clearer is a sink that can blank and latch itself in one step.
type clearer interface {
	Clear() error
}

// Clear zeroes every pixel and latches. Sinks with their own Clear are
// blanked through it.
func (e *Engine) Clear() error {
	e.Buf.Clear()
	if c, ok := e.Out.(clearer); ok {
		return c.Clear()
	}
	return e.Fill(0, 0, 0)
}

func (e *Engine) latch() error {
	if e.Out == nil {
		return nil
	}
	e.Buf.FlushTo(e.Out)
	return e.Out.Show()
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
