package led

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// NRZFreq is the SPI clock nrzled expects: three SPI bits per WS2812 bit at
// 800 kHz plus margin. nrzled rejects any other rate.
const NRZFreq = 2500 * physic.KiloHertz

// NRZ drives WS281x pixels by NRZ-encoding frames onto an SPI bus.
type NRZ struct {
	mu     sync.Mutex
	dev    *nrzled.Dev
	closer io.Closer
	n      int
}

// NewNRZ opens the SPI port named bus ("" picks the first one) and prepares
// it for n pixels.
func NewNRZ(bus string, n int) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", bus, err)
	}
	d, err := newNRZ(p, p, n)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return d, nil
}

func newNRZ(p spi.Port, closer io.Closer, n int) (*NRZ, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid LED count: %d", n)
	}
	dev, err := nrzled.NewSPI(p, &nrzled.Opts{NumPixels: n, Channels: 3, Freq: NRZFreq})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{dev: dev, closer: closer, n: n}, nil
}

func (d *NRZ) Write(rgb []byte) error {
	if err := checkFrame(rgb, d.n); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return ErrClosed
	}
	if _, err := d.dev.Write(rgb); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (d *NRZ) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dev == nil {
		return nil
	}
	err := d.dev.Halt()
	d.dev = nil
	if d.closer != nil {
		if cerr := d.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
