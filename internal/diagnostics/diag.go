// Package diagnostics describes notable runtime conditions in a form the
// console can show to an operator.
package diagnostics

import (
	"sync"
	"time"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the program.
const (
	DriverFallback   = "DRIVER.FALLBACK"
	ButtonMissing    = "BUTTON.MISSING"
	IndicatorMissing = "INDICATOR.MISSING"
	SceneRejected    = "SCENE.REJECTED"
	SceneChanged     = "SCENE.CHANGED"
	BrightnessChange = "BRIGHTNESS.CHANGED"
	FrameOverrun     = "FRAME.OVERRUN"
	LatchFailed      = "FRAME.LATCH_FAILED"
)

type Diagnostic struct {
	Time           time.Time      `json:"time"`
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Sink receives diagnostics. Implementations must not block.
type Sink interface {
	Push(Diagnostic)
}

type Discard struct{}

func (Discard) Push(Diagnostic) {}

// Log keeps the most recent diagnostics, oldest first, and forwards each one
// to Next when set.
type Log struct {
	Max  int
	Next Sink

	mu    sync.Mutex
	items []Diagnostic
}

func (l *Log) Push(d Diagnostic) {
	if d.Time.IsZero() {
		d.Time = time.Now()
	}
	l.mu.Lock()
	l.items = append(l.items, d)
	if l.Max > 0 && len(l.items) > l.Max {
		l.items = l.items[len(l.items)-l.Max:]
	}
	next := l.Next
	l.mu.Unlock()
	if next != nil {
		next.Push(d)
	}
}

func (l *Log) Items() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Diagnostic(nil), l.items...)
}
