package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/plasmaglow/internal/app"
	"github.com/coreman2200/plasmaglow/internal/config"
)

func main() {
	// ---- Flags (override config.yaml when set) ----
	var (
		configPath = flag.String("config", "plasmaglow.yaml", "path to config file")
		numLEDs    = flag.Int("leds", 0, "number of LEDs")
		fps        = flag.Int("fps", 0, "target frames per second (negative runs unpaced)")
		scene      = flag.Int("scene", 0, "start scene (1-based)")
		driver     = flag.String("driver", "", "driver: sim | nrz | serial")
		colorOrder = flag.String("color", "", "LED color order (e.g. RGB, GRB)")
		addr       = flag.String("addr", "", "console listen address; empty disables it")
		flash      = flag.Bool("flash", false, "warm startup flash to check wiring")
		selfTest   = flag.String("selftest", "", "comma-separated wiring patterns: rgb_channels, index_sweep")
		logLevel   = flag.String("log-level", "info", "trace | debug | info | warn | error")
		logJSON    = flag.Bool("log-json", false, "log JSON instead of console text")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	if !*logJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Str("level", *logLevel).Msg("unknown log level; using info")
	}

	// ---- Config ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", *configPath).Msg("config not found; using defaults")
		} else {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "leds":
			cfg.NumLEDs = *numLEDs
		case "fps":
			cfg.FPS = *fps
		case "scene":
			cfg.Scene = *scene
		case "driver":
			cfg.Driver = *driver
		case "color":
			cfg.ColorOrder = *colorOrder
		case "addr":
			cfg.HTTPAddr = *addr
		case "flash":
			cfg.StartupFlash = *flash
		case "selftest":
			cfg.SelfTest = strings.Split(*selfTest, ",")
		}
	})

	a, err := app.Build(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	// ---- Graceful shutdown ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := a.Run(ctx)
	if err := a.Close(); err != nil {
		log.Warn().Err(err).Msg("close")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("render loop")
	}
	log.Info().Msg("stopped")
}
