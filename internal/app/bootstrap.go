package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/plasmaglow/internal/button"
	"github.com/coreman2200/plasmaglow/internal/clock"
	"github.com/coreman2200/plasmaglow/internal/config"
	"github.com/coreman2200/plasmaglow/internal/control"
	diag "github.com/coreman2200/plasmaglow/internal/diagnostics"
	"github.com/coreman2200/plasmaglow/internal/led"
	"github.com/coreman2200/plasmaglow/internal/render"
	"github.com/coreman2200/plasmaglow/internal/render/scenes/candle"
	"github.com/coreman2200/plasmaglow/internal/render/scenes/heartbeat"
	"github.com/coreman2200/plasmaglow/internal/render/scenes/palette"
	"github.com/coreman2200/plasmaglow/internal/render/scenes/solid"
	"github.com/coreman2200/plasmaglow/internal/render/scenes/sunset"
	"github.com/coreman2200/plasmaglow/internal/selftest"
	"github.com/coreman2200/plasmaglow/internal/ws"
)

const (
	flashHue = 35.0 / 360.0
	flashSat = 0.35
	flashVal = 0.35
	flashMS  = 600
)

// Scenes builds the scene table in display order.
func Scenes(n int, bpm float64, rng *rand.Rand) (*render.Registry, error) {
	reg := render.NewRegistry()
	scenes := []render.Scene{candle.New(n, rng), sunset.New(), heartbeat.New(bpm)}
	for _, p := range palette.All() {
		scenes = append(scenes, p)
	}
	for _, s := range scenes {
		if _, err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// App is the wired program.
type App struct {
	Cfg       *config.Config
	Reg       *render.Registry
	Ctl       *control.Surface
	Strip     *led.Strip
	Eng       *render.Engine
	Conductor *Conductor
	Console   *ws.State // nil unless http_addr is set
	Diag      *diag.Log
	Out       led.Driver // the hardware (or sim) driver behind the strip
	Driver    string

	closers []io.Closer
}

// Build wires the program from cfg. Hardware that cannot be opened is swapped
// for its simulated or absent stand-in; only an invalid config is fatal.
func Build(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	reg, err := Scenes(cfg.NumLEDs, cfg.HeartbeatBPM, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	ctl, err := control.New(cfg.BrightLevels, cfg.BrightIndex, cfg.Scene, reg.Names())
	if err != nil {
		return nil, err
	}
	a := &App{Cfg: cfg, Reg: reg, Ctl: ctl, Diag: &diag.Log{Max: 64}}
	ctl.SetSink(a.Diag)

	if cfg.Button.Pin != "" || cfg.IndicatorPin != "" {
		if _, err := host.Init(); err != nil {
			log.Warn().Err(err).Msg("periph host init failed")
		}
	}

	a.Out, a.Driver = a.openDriver()
	a.closers = append(a.closers, a.Out)
	out := a.Out
	if cfg.HTTPAddr != "" {
		a.Console = ws.NewState(ctl, cfg.NumLEDs, a.Driver)
		a.Diag.Next = a.Console
		for _, d := range a.Diag.Items() {
			a.Console.Push(d)
		}
		out = led.Multi{a.Out, a.Console}
	}

	order, err := led.ParseOrder(cfg.ColorOrder)
	if err != nil {
		return nil, err
	}
	post := &led.Post{
		Gamma:     cfg.Power.Gamma,
		WhiteCap:  cfg.Power.WhiteCap,
		ChannelMA: cfg.Power.ChannelMA,
		BudgetMA:  cfg.Power.BudgetMA,
		Knee:      cfg.Power.Knee,
	}
	if a.Strip, err = led.NewStrip(cfg.NumLEDs, out, order, post); err != nil {
		return nil, err
	}
	if a.Eng, err = render.NewEngine(cfg.NumLEDs, a.Strip); err != nil {
		return nil, err
	}

	btn := button.Probe(button.Options{Chip: cfg.Button.Chip, Offset: cfg.Button.Line, Pin: cfg.Button.Pin})
	if c, ok := btn.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	ctl.SetButton(btn.Source(), button.Available(btn))
	if !button.Available(btn) {
		a.Diag.Push(diag.Diagnostic{
			Severity: diag.Info, Code: diag.ButtonMissing, Summary: "No button input; console only",
			SuggestedFixes: []string{"set button.chip/button.line or button.pin"},
		})
	}

	a.Conductor = &Conductor{
		Eng:       a.Eng,
		Reg:       reg,
		Ctl:       ctl,
		Button:    btn,
		Debouncer: &button.Debouncer{LongPress: int32(cfg.Button.LongPressMS)},
		Clock:     clock.System(),
		Indicator: a.openIndicator(),
		Diag:      a.Diag,
		FPS:       cfg.FPS,
	}
	return a, nil
}

func (a *App) openDriver() (led.Driver, string) {
	cfg := a.Cfg
	var (
		d   led.Driver
		err error
	)
	switch cfg.Driver {
	case config.DriverNRZ:
		d, err = led.NewNRZ(cfg.SPI.Bus, cfg.NumLEDs)
	case config.DriverSerial:
		d, err = led.NewSerial(cfg.Serial.Port, cfg.Serial.Baud, cfg.NumLEDs)
	default:
		return led.NewSim(cfg.NumLEDs), config.DriverSim
	}
	if err != nil {
		log.Warn().Err(err).Str("driver", cfg.Driver).Msg("driver init failed; falling back to SIM")
		a.Diag.Push(diag.Diagnostic{
			Severity: diag.Warn, Code: diag.DriverFallback, Summary: "Hardware output unavailable; using sim",
			Detail: err.Error(), Evidence: map[string]any{"driver": cfg.Driver},
		})
		return led.NewSim(cfg.NumLEDs), config.DriverSim
	}
	return d, cfg.Driver
}

func (a *App) openIndicator() led.Indicator {
	if a.Cfg.IndicatorPin == "" {
		return led.NoIndicator{}
	}
	ind, err := led.OpenIndicator(a.Cfg.IndicatorPin)
	if err != nil {
		log.Warn().Err(err).Str("pin", a.Cfg.IndicatorPin).Msg("indicator unavailable")
		a.Diag.Push(diag.Diagnostic{Severity: diag.Info, Code: diag.IndicatorMissing,
			Summary: "Indicator pin unavailable", Detail: err.Error()})
		return led.NoIndicator{}
	}
	a.closers = append(a.closers, ind)
	return ind
}

// Run starts the strip, serves the console if configured and blocks in the
// render loop until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.Strip.Start()
	if a.Cfg.StartupFlash {
		if err := a.flash(ctx); err != nil {
			return err
		}
	}
	if err := a.selfTest(ctx); err != nil {
		return err
	}
	a.ready()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	if a.Console != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.Console.Serve(ctx, a.Cfg.HTTPAddr); err != nil {
				log.Error().Err(err).Msg("console stopped")
			}
		}()
	}
	err := a.Conductor.Run(ctx)
	cancel()
	wg.Wait()
	return err
}

// flash shows a short warm fill so wiring problems are obvious at power-up.
// A failed latch still attempts the clear. An interrupted wait only shortens
// the flash; the render loop sees the cancellation next.
func (a *App) flash(ctx context.Context) error {
	if err := a.Eng.RenderOnce(solid.New("flash", flashHue, flashSat, flashVal), 0, 1); err != nil {
		return errors.Join(fmt.Errorf("startup flash: %w", err), a.Eng.Clear())
	}
	if err := a.Conductor.Clock.Sleep(ctx, flashMS); err != nil {
		log.Debug().Err(err).Msg("startup flash interrupted")
	}
	return a.Eng.Clear()
}

// selfTest plays the configured wiring patterns at the current brightness.
func (a *App) selfTest(ctx context.Context) error {
	for _, name := range a.Cfg.SelfTest {
		k, err := selftest.ParseKind(name)
		if err != nil {
			return err
		}
		log.Info().Str("pattern", name).Msg("self test")
		r := selftest.NewRunner(k)
		for r.Step(a.Eng.Buf, a.Ctl.Brightness()) {
			if err := a.Eng.RenderOnce(nil, 0, 0); err != nil {
				return fmt.Errorf("self test %s: %w", name, err)
			}
			if err := a.Conductor.Clock.Sleep(ctx, k.StepMS()); err != nil {
				return a.Eng.Clear()
			}
		}
	}
	if len(a.Cfg.SelfTest) > 0 {
		return a.Eng.Clear()
	}
	return nil
}

func (a *App) ready() {
	st := a.Ctl.Status()
	log.Info().
		Bool("button_available", st.ButtonAvailable).
		Str("button", st.ButtonSource).
		Str("driver", a.Driver).
		Int("scene", st.Scene).
		Float64("brightness", st.Brightness).
		Strs("scenes", st.Scenes).
		Msg("ready")
}

// Close releases hardware in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
