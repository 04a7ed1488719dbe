package button

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Line is a character-device GPIO line wired active-low to ground with the
// internal pull-up enabled.
type Line struct {
	l *gpiocdev.Line
}

func OpenLine(chip string, offset int) (*Line, error) {
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.AsActiveLow,
		gpiocdev.WithPullUp,
		gpiocdev.WithConsumer("plasmaglow"),
	)
	if err != nil {
		return nil, fmt.Errorf("request %s:%d: %w", chip, offset, err)
	}
	return &Line{l: l}, nil
}

// Read returns true while the button is held. Active-low is handled by the
// kernel, so a logical 1 means pressed.
func (b *Line) Read() (bool, error) {
	v, err := b.l.Value()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

func (b *Line) Close() error { return b.l.Close() }
