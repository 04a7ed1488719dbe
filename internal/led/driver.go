// Package led pushes frames to the physical strip: a Pixels-compatible Strip
// in front of one or more byte-level drivers.
package led

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	ErrFrameSize = errors.New("frame size mismatch")
	ErrClosed    = errors.New("driver closed")
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

func checkFrame(rgb []byte, n int) error {
	if len(rgb) != 3*n {
		return fmt.Errorf("%w: got %d bytes for %d pixels", ErrFrameSize, len(rgb), n)
	}
	return nil
}

// Sim is a driver with no hardware behind it. It keeps the last frame and a
// frame count so tests and the preview can inspect output.
type Sim struct {
	mu     sync.Mutex
	n      int
	last   []byte
	frames int
	closed bool
}

func NewSim(n int) *Sim { return &Sim{n: n, last: make([]byte, 3*n)} }

func (s *Sim) Write(rgb []byte) error {
	if err := checkFrame(rgb, s.n); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	copy(s.last, rgb)
	s.frames++
	if e := log.Trace(); e.Enabled() && s.n > 0 {
		var sum [3]int
		for i, v := range rgb {
			sum[i%3] += int(v)
		}
		e.Int("frame", s.frames).
			Ints("avg", []int{sum[0] / s.n, sum[1] / s.n, sum[2] / s.n}).
			Uints8("first", rgb[:3]).
			Msg("sim frame")
	}
	return nil
}

// Last returns a copy of the most recent frame.
func (s *Sim) Last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.last...)
}

func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Sim) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Multi fans every frame out to several drivers, e.g. hardware plus preview.
// A failing driver does not stop the others.
type Multi []Driver

func (m Multi) Write(rgb []byte) error {
	var errs []error
	for _, d := range m {
		if err := d.Write(rgb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, d := range m {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
