package led

import (
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"
)

// Serial streams frames to a microcontroller using Adalight framing:
// "Ada", count-1 as big-endian uint16, a checksum byte, then RGB triples.
type Serial struct {
	mu    sync.Mutex
	w     io.WriteCloser
	n     int
	frame []byte
}

func NewSerial(port string, baud, n int) (*Serial, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid LED count: %d", n)
	}
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", port, err)
	}
	return newSerial(p, n), nil
}

func newSerial(w io.WriteCloser, n int) *Serial {
	s := &Serial{w: w, n: n, frame: make([]byte, 6+3*n)}
	copy(s.frame, AdalightHeader(n))
	return s
}

// AdalightHeader is the six byte preamble announcing n pixels.
func AdalightHeader(n int) []byte {
	hi, lo := byte((n-1)>>8), byte(n-1)
	return []byte{'A', 'd', 'a', hi, lo, hi ^ lo ^ 0x55}
}

func (s *Serial) Write(rgb []byte) error {
	if err := checkFrame(rgb, s.n); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return ErrClosed
	}
	copy(s.frame[6:], rgb)
	if _, err := s.w.Write(s.frame); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	return nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}
