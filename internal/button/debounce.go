// Package button turns a raw pressed/released level into short and long press
// events, and finds a physical button to read it from.
package button

import "github.com/coreman2200/plasmaglow/internal/clock"

// DefaultLongPressMS is the hold time at which a press counts as long.
const DefaultLongPressMS = 700

type Event uint8

const (
	None Event = iota
	Short
	Long
)

func (e Event) String() string {
	switch e {
	case Short:
		return "short"
	case Long:
		return "long"
	default:
		return "none"
	}
}

// Debouncer is the two-state press tracker. It is polled once per frame and
// emits exactly one event per completed press, on release. The zero value uses
// DefaultLongPressMS.
type Debouncer struct {
	LongPress int32

	down  bool
	since uint32
}

// Poll advances the machine with the level sampled at now.
func (d *Debouncer) Poll(now uint32, pressed bool) Event {
	switch {
	case pressed && !d.down:
		d.down, d.since = true, now
	case !pressed && d.down:
		d.down = false
		if clock.Diff(now, d.since) >= d.longPress() {
			return Long
		}
		return Short
	}
	return None
}

// Down reports whether a press is in progress.
func (d *Debouncer) Down() bool { return d.down }

func (d *Debouncer) longPress() int32 {
	if d.LongPress <= 0 {
		return DefaultLongPressMS
	}
	return d.LongPress
}
