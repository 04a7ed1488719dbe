package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/plasmaglow/internal/button"
	"github.com/coreman2200/plasmaglow/internal/clock"
	"github.com/coreman2200/plasmaglow/internal/control"
	diag "github.com/coreman2200/plasmaglow/internal/diagnostics"
	"github.com/coreman2200/plasmaglow/internal/led"
	"github.com/coreman2200/plasmaglow/internal/render"
)

var ErrNoScenes = errors.New("no scenes registered")

const statsEvery = 1000

// Conductor is the render loop. It is the only writer of pixels: each frame it
// renders the selected scene, latches it, polls the button once and paces to
// FPS. Nil optional fields fall back to no-op or default implementations.
type Conductor struct {
	Eng       *render.Engine
	Reg       *render.Registry
	Ctl       *control.Surface
	Button    button.Reader
	Debouncer *button.Debouncer
	Clock     clock.Clock
	Indicator led.Indicator
	Diag      diag.Sink
	FPS       int // <= 0 runs unpaced
}

// Run loops until ctx is done, then blanks the strip. The clear is always
// attempted; its error is the only one Run returns after the loop started.
func (c *Conductor) Run(ctx context.Context) error {
	if c.Reg == nil || c.Reg.Count() == 0 {
		log.Error().Msg("no scenes registered")
		return ErrNoScenes
	}
	c.defaults()

	count := c.Reg.Count()
	if s := c.Ctl.Scene(); s != c.Ctl.EnsureScene() {
		log.Warn().Int("scene", s).Msg("start scene out of range; using 1")
	}

	var (
		frameTime   = 0
		start       = c.Clock.Now()
		prev        = start
		tms         int64
		frames      int
		statStart   = start
		latchFailed bool
		overrun     bool
	)
	if c.FPS > 0 {
		frameTime = 1000 / c.FPS
	}

	for ctx.Err() == nil {
		now := c.Clock.Now()
		tms += int64(now - prev)
		prev = now

		scene, _ := c.Reg.Get(1 + (c.Ctl.Scene()-1)%count)
		if err := c.Eng.RenderOnce(scene, tms, c.Ctl.Brightness()); err != nil {
			if !latchFailed {
				log.Warn().Err(err).Msg("frame latch failed")
				c.Diag.Push(diag.Diagnostic{Severity: diag.Warn, Code: diag.LatchFailed,
					Summary: "Frame latch failed", Detail: err.Error()})
			}
			latchFailed = true
		} else {
			latchFailed = false
		}
		log.Trace().Int64("t", tms).Str("scene", scene.Name()).Float64("render_ms", c.Eng.Last.RenderMS).Msg("frame")

		c.Ctl.Apply(c.Debouncer.Poll(now, c.Button.Pressed()))
		c.Indicator.Set((now/500)%2 == 1)

		frames++
		if frames%statsEvery == 0 {
			if span := clock.Diff(now, statStart); span > 0 {
				log.Debug().Float64("fps", float64(statsEvery)*1000/float64(span)).Msg("average frame rate")
			}
			statStart = now
		}

		if frameTime > 0 {
			elapsed := int(clock.Diff(c.Clock.Now(), now))
			if elapsed > frameTime {
				if !overrun {
					log.Debug().Int("elapsed_ms", elapsed).Int("budget_ms", frameTime).Msg("frame overrun")
					c.Diag.Push(diag.Diagnostic{Severity: diag.Info, Code: diag.FrameOverrun,
						Summary:        "Frame took longer than the frame budget",
						Evidence:       map[string]any{"elapsed_ms": elapsed, "budget_ms": frameTime, "scene": scene.Name()},
						SuggestedFixes: []string{"lower fps or num_leds"}})
				}
				overrun = true
			} else {
				overrun = false
			}
			if delay := frameTime - elapsed; delay > 0 {
				if err := c.Clock.Sleep(ctx, delay); err != nil {
					break
				}
			}
		}
	}

	c.Indicator.Set(false)
	if err := c.Eng.Clear(); err != nil {
		return fmt.Errorf("clear on shutdown: %w", err)
	}
	log.Info().Int("frames", frames).Msg("stopped")
	return nil
}

func (c *Conductor) defaults() {
	if c.Button == nil {
		c.Button = button.NoButton{}
	}
	if c.Debouncer == nil {
		c.Debouncer = &button.Debouncer{}
	}
	if c.Clock == nil {
		c.Clock = clock.System()
	}
	if c.Indicator == nil {
		c.Indicator = led.NoIndicator{}
	}
	if c.Diag == nil {
		c.Diag = diag.Discard{}
	}
}
