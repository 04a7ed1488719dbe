package button

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Pin reads a button through the periph GPIO registry. The button shorts the
// pin to ground, so Low is pressed.
type Pin struct {
	p gpio.PinIO
}

// OpenPin looks name up in gpioreg and configures it as a pulled-up input. The
// host drivers must already be initialized.
func OpenPin(name string) (*Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q not found", name)
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("gpio %s as input: %w", name, err)
	}
	return &Pin{p: p}, nil
}

func (b *Pin) Read() (bool, error) { return b.p.Read() == gpio.Low, nil }

func (b *Pin) Close() error { return b.p.Halt() }
