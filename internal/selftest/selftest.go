// Package selftest draws wiring check patterns: one channel at a time across
// the whole strip, or a single lit pixel walking from the first to the last.
package selftest

import (
	"fmt"
	"math"

	"github.com/coreman2200/plasmaglow/internal/render"
)

type Kind string

const (
	IndexSweep  Kind = "index_sweep"
	RGBChannels Kind = "rgb_channels"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case IndexSweep, RGBChannels:
		return k, nil
	default:
		return "", fmt.Errorf("unknown self test %q", s)
	}
}

// StepMS is how long each pattern frame should stay up.
func (k Kind) StepMS() int {
	if k == RGBChannels {
		return 500
	}
	return 40
}

type Runner struct {
	kind Kind
	step int
}

func NewRunner(k Kind) *Runner { return &Runner{kind: k} }

func (r *Runner) Kind() Kind { return r.kind }

// Step fills px with the next frame; returns false when complete.
func (r *Runner) Step(px render.Pixels, brightness float64) bool {
	n := px.Len()
	lvl := uint8(math.Round(255 * render.Clamp01(brightness)))
	for i := 0; i < n; i++ {
		px.SetRGB(i, 0, 0, 0)
	}

	switch r.kind {
	case IndexSweep:
		if r.step >= n {
			return false
		}
		px.SetRGB(r.step, lvl, lvl, lvl)
	case RGBChannels:
		if r.step >= 3 {
			return false
		}
		var c [3]uint8
		c[r.step] = lvl
		for i := 0; i < n; i++ {
			px.SetRGB(i, c[0], c[1], c[2])
		}
	default:
		return false
	}
	r.step++
	return true
}
