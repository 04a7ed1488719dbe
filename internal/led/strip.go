package led

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/plasmaglow/internal/render"
)

var ErrNotStarted = errors.New("strip not started")

// Strip is the pixel buffer in front of a driver. Colors set between Shows are
// held in RGB; Show applies the post stage and color order, then writes the
// frame and returns only once the driver has it.
type Strip struct {
	mu      sync.Mutex
	drv     Driver
	order   ColorOrder
	post    *Post
	rgb     []byte
	work    []byte
	wire    []byte
	started bool
}

// NewStrip fixes the pixel count for the life of the strip. post may be nil.
func NewStrip(n int, drv Driver, order ColorOrder, post *Post) (*Strip, error) {
	if n < 1 {
		return nil, fmt.Errorf("strip needs at least one pixel, got %d", n)
	}
	return &Strip{
		drv:   drv,
		order: order,
		post:  post,
		rgb:   make([]byte, 3*n),
		work:  make([]byte, 3*n),
		wire:  make([]byte, 3*n),
	}, nil
}

func (s *Strip) Len() int { return len(s.rgb) / 3 }

func (s *Strip) SetRGB(i int, r, g, b uint8) {
	if i < 0 || i >= s.Len() {
		return
	}
	s.mu.Lock()
	s.rgb[3*i], s.rgb[3*i+1], s.rgb[3*i+2] = r, g, b
	s.mu.Unlock()
}

// SetHSV takes all three components in [0,1].
func (s *Strip) SetHSV(i int, h, sat, v float64) {
	c := colorful.Hsv(render.WrapHue(h)*360, render.Clamp01(sat), render.Clamp01(v))
	r, g, b := c.RGB255()
	s.SetRGB(i, r, g, b)
}

// Start arms the output. Show fails until Start has been called.
func (s *Strip) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
}

func (s *Strip) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}
	frame := s.rgb
	if s.post != nil {
		copy(s.work, s.rgb)
		s.post.Apply(s.work)
		frame = s.work
	}
	s.order.Apply(s.wire, frame)
	return s.drv.Write(s.wire)
}

// Clear blanks every pixel and latches the dark frame.
func (s *Strip) Clear() error {
	s.mu.Lock()
	clear(s.rgb)
	s.mu.Unlock()
	return s.Show()
}

func (s *Strip) Close() error { return s.drv.Close() }
