package button

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Reader is the button as the render loop sees it: a level that never fails.
type Reader interface {
	Pressed() bool
	Source() string
}

// Source is a hardware input that may fail.
type Source interface {
	Read() (bool, error)
	Close() error
}

// Safe wraps src so read errors count as "not pressed". The first error is
// logged; later ones are dropped.
func Safe(name string, src Source) *SafeReader {
	return &SafeReader{name: name, src: src}
}

type SafeReader struct {
	name   string
	src    Source
	logged sync.Once
}

func (s *SafeReader) Pressed() bool {
	v, err := s.src.Read()
	if err != nil {
		s.logged.Do(func() {
			log.Debug().Err(err).Str("source", s.name).Msg("button read failed; treating as released")
		})
		return false
	}
	return v
}

func (s *SafeReader) Source() string { return s.name }

func (s *SafeReader) Close() error { return s.src.Close() }

// NoButton is the reader used when no input could be opened.
type NoButton struct{}

func (NoButton) Pressed() bool  { return false }
func (NoButton) Source() string { return "none" }

// Available reports whether r is backed by real input.
func Available(r Reader) bool {
	_, none := r.(NoButton)
	return r != nil && !none
}
