// Package clock provides the wrapping millisecond tick the render loop and the
// button debouncer share.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock reports milliseconds since an arbitrary origin. The counter wraps at
// 2^32; compare ticks with Diff, never with < or >.
type Clock interface {
	Now() uint32
	Sleep(ctx context.Context, ms int) error
}

// Diff returns a-b as a signed distance, correct across a single wrap.
func Diff(a, b uint32) int32 { return int32(a - b) }

type system struct{ origin time.Time }

// System returns a Clock backed by the monotonic wall clock.
func System() Clock { return system{origin: time.Now()} }

func (c system) Now() uint32 { return uint32(time.Since(c.origin).Milliseconds()) }

// Sleep waits ms milliseconds or until ctx is done. ms <= 0 only checks ctx.
func (system) Sleep(ctx context.Context, ms int) error {
	if ms <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Manual is a hand-driven clock for tests. Sleep advances it instead of waiting.
type Manual struct {
	mu    sync.Mutex
	now   uint32
	slept []int
}

func NewManual(start uint32) *Manual { return &Manual{now: start} }

func (m *Manual) Now() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by ms, wrapping like the real counter.
func (m *Manual) Advance(ms uint32) {
	m.mu.Lock()
	m.now += ms
	m.mu.Unlock()
}

func (m *Manual) Set(now uint32) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *Manual) Sleep(ctx context.Context, ms int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.slept = append(m.slept, ms)
	if ms > 0 {
		m.now += uint32(ms)
	}
	m.mu.Unlock()
	return nil
}

// Slept lists every Sleep request in order.
func (m *Manual) Slept() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.slept...)
}
