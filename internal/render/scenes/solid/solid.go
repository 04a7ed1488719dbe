// Package solid fills the whole strip with one color.
package solid

import "github.com/coreman2200/plasmaglow/internal/render"

// Solid ignores time. Its value is scaled by the frame brightness.
type Solid struct {
	name    string
	h, s, v float64
}

func New(name string, h, s, v float64) *Solid { return &Solid{name: name, h: h, s: s, v: v} }

func (s *Solid) Name() string { return s.name }

func (s *Solid) Render(px render.Pixels, _ int64, brightness float64) {
	for i := 0; i < px.Len(); i++ {
		px.SetHSV(i, s.h, s.s, s.v*brightness)
	}
}
