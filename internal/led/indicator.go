package led

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Indicator is the board status LED blinked by the render loop.
type Indicator interface {
	Set(on bool)
}

type NoIndicator struct{}

func (NoIndicator) Set(bool) {}

// IndicatorPin drives an indicator through a periph GPIO output. Write errors
// are logged once and otherwise ignored.
type IndicatorPin struct {
	p      gpio.PinIO
	warned sync.Once
}

// OpenIndicator looks up name in gpioreg and drives it low. The host drivers
// must already be initialized.
func OpenIndicator(name string) (*IndicatorPin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q not found", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio %s as output: %w", name, err)
	}
	return &IndicatorPin{p: p}, nil
}

func (i *IndicatorPin) Set(on bool) {
	if err := i.p.Out(gpio.Level(on)); err != nil {
		i.warned.Do(func() {
			log.Debug().Err(err).Str("pin", i.p.Name()).Msg("indicator write failed")
		})
	}
}

func (i *IndicatorPin) Close() error {
	_ = i.p.Out(gpio.Low)
	return i.p.Halt()
}
