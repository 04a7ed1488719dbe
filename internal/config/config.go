package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/plasmaglow/internal/led"
	"github.com/coreman2200/plasmaglow/internal/selftest"
)

var ErrInvalid = errors.New("invalid config")

// Drivers accepted in Config.Driver.
const (
	DriverSim    = "sim"
	DriverNRZ    = "nrz"
	DriverSerial = "serial"
)

type Power struct {
	Gamma     float64 `yaml:"gamma"`
	WhiteCap  float64 `yaml:"white_cap"`  // max R+G+B per LED, 0..3
	BudgetMA  float64 `yaml:"budget_ma"`  // 0 disables the limiter
	ChannelMA float64 `yaml:"channel_ma"` // mA per channel at full scale
	Knee      float64 `yaml:"knee"`
}

type Button struct {
	Chip        string `yaml:"chip"` // e.g. gpiochip0
	Line        int    `yaml:"line"` // offset on Chip; -1 disables
	Pin         string `yaml:"pin"`  // periph name, e.g. GPIO3
	LongPressMS int    `yaml:"longpress_ms"`
}

type SPI struct {
	Bus string `yaml:"bus"` // "" picks the first port
}

type Serial struct {
	Port string `yaml:"port"` // e.g. /dev/ttyACM0
	Baud int    `yaml:"baud"`
}

type Config struct {
	NumLEDs      int       `yaml:"num_leds"`
	FPS          int       `yaml:"fps"` // <= 0 runs unpaced
	BrightLevels []float64 `yaml:"bright_levels"`
	BrightIndex  int       `yaml:"bright_index"`
	Scene        int       `yaml:"scene"` // 1-based start scene
	ColorOrder   string    `yaml:"color_order"`
	Driver       string    `yaml:"driver"` // sim | nrz | serial
	HeartbeatBPM float64   `yaml:"heartbeat_bpm"`
	StartupFlash bool      `yaml:"startup_flash"`
	IndicatorPin string    `yaml:"indicator_pin"`
	HTTPAddr     string    `yaml:"http_addr"` // "" disables the console
	Seed         int64     `yaml:"seed"`      // 0 seeds from the clock
	SelfTest     []string  `yaml:"self_test"` // wiring patterns run before the loop

	Button Button `yaml:"button"`
	SPI    SPI    `yaml:"spi"`
	Serial Serial `yaml:"serial"`
	Power  Power  `yaml:"power"`
}

func Default() *Config {
	return &Config{
		NumLEDs:      50,
		FPS:          60,
		BrightLevels: []float64{0.18, 0.30, 0.45},
		BrightIndex:  1,
		Scene:        1,
		ColorOrder:   "RGB",
		Driver:       DriverSim,
		HeartbeatBPM: 50,
		Button:       Button{Chip: "gpiochip0", Line: -1, LongPressMS: 700},
		Serial:       Serial{Port: "/dev/ttyACM0", Baud: 115200},
	}
}

// Load reads path over Default. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first setting the program cannot run with.
func (c *Config) Validate() error {
	if c.NumLEDs < 1 {
		return fmt.Errorf("%w: num_leds must be >= 1, got %d", ErrInvalid, c.NumLEDs)
	}
	if len(c.BrightLevels) == 0 {
		return fmt.Errorf("%w: bright_levels is empty", ErrInvalid)
	}
	for i, b := range c.BrightLevels {
		if b < 0 || b > 1 {
			return fmt.Errorf("%w: bright_levels[%d]=%g outside 0..1", ErrInvalid, i, b)
		}
	}
	if _, err := led.ParseOrder(c.ColorOrder); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Driver {
	case DriverSim, DriverNRZ, DriverSerial:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalid, c.Driver)
	}
	if c.Button.LongPressMS <= 0 {
		return fmt.Errorf("%w: button.longpress_ms must be > 0", ErrInvalid)
	}
	if c.HeartbeatBPM <= 0 {
		return fmt.Errorf("%w: heartbeat_bpm must be > 0", ErrInvalid)
	}
	for _, k := range c.SelfTest {
		if _, err := selftest.ParseKind(k); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}
