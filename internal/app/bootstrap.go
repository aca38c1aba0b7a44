// Package app wires a loaded configuration to concrete sinks and a player.
package app

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrudolph/twaeng-pop-sign/internal/config"
	"github.com/jrudolph/twaeng-pop-sign/internal/driver/fake"
	"github.com/jrudolph/twaeng-pop-sign/internal/driver/term"
	"github.com/jrudolph/twaeng-pop-sign/internal/led"
	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/show"
	"github.com/jrudolph/twaeng-pop-sign/internal/timing"
	"github.com/jrudolph/twaeng-pop-sign/internal/ws"
)

type Core struct {
	Cfg    *config.Config
	Show   *config.Show
	Eng    *render.Engine
	Player *show.Player
	Hub    *ws.Hub // nil without a listen address
	Term   *term.Terminal

	closers []io.Closer
}

// Options carries what cannot come from the config file.
type Options struct {
	// Limiter overrides the real time sleeper scaled by Config.Speed.
	Limiter timing.Limiter
	// Sinks are written after the configured driver.
	Sinks []render.Driver
	// OnQuit is called when the terminal preview asks to stop.
	OnQuit func()
	Logger *zerolog.Logger
}

func InitCore(cfg *config.Config, o Options) (*Core, error) {
	sh, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	lg := log.Logger
	if o.Logger != nil {
		lg = *o.Logger
	}
	c := &Core{Cfg: cfg, Show: sh}
	n := sh.Sign.Topo.Len()

	// 1) Sinks
	var drvs render.Multi
	var dims render.Dimmers
	switch cfg.Driver {
	case config.DriverSPI:
		s, err := led.Open(led.Options{
			Dev:      cfg.SPI.Dev,
			Count:    n,
			Channels: cfg.SPI.Channels,
			FreqHz:   cfg.SPI.FreqHz,
			Fallback: true,
		})
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, s)
		drvs = append(drvs, s)
	case config.DriverConsole:
		s, err := led.OpenConsole(n)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, s)
		drvs = append(drvs, s)
	case config.DriverTerm:
		t, err := term.New(termCols(n), o.OnQuit)
		if err != nil {
			return nil, err
		}
		c.Term = t
		c.closers = append(c.closers, t)
		drvs = append(drvs, t)
	case config.DriverLog:
		drvs = append(drvs, &fake.Driver{Every: 100, Log: lg})
	case config.DriverNone:
	default:
		return nil, fmt.Errorf("app: unknown driver %q", cfg.Driver)
	}
	drvs = append(drvs, o.Sinks...)

	if cfg.Backlight.Pin != "" {
		b, err := led.OpenBacklight(cfg.Backlight.Pin, cfg.Backlight.FreqHz)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.closers = append(c.closers, b)
		dims = append(dims, b)
	}

	if cfg.Addr != "" {
		c.Hub = ws.NewHub(n, cfg.Driver)
		drvs = append(drvs, c.Hub)
		dims = append(dims, c.Hub)
	}

	// 2) Engine
	eng, err := render.NewEngine(n, drvs)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if len(dims) > 0 {
		eng.Dim = dims
	}
	if sh.Power.Enabled() {
		eng.SetPost(render.PostPipeline{Limiter: sh.Power.Apply})
	}
	c.Eng = eng

	// 3) Player
	lim := o.Limiter
	if lim == nil {
		lim = timing.Scaled{L: timing.NewSleeper(), Factor: cfg.Speed}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	errLog := lg.Sample(&zerolog.BurstSampler{Burst: 5, Period: time.Second})
	hooks := show.Hooks{
		OnPhase: func(i int, p show.Phase) {
			lg.Info().Int("index", i).Str("phase", p.String()).Msg("phase")
			if c.Hub != nil {
				c.Hub.PhaseStarted(i, p.String())
			}
			if c.Term != nil {
				c.Term.SetStatus(fmt.Sprintf("%d %s", i, p))
			}
		},
		OnFrameError: func(err error) {
			errLog.Warn().Err(err).Msg("frame write failed")
			if c.Hub != nil {
				c.Hub.FrameError(err)
			}
		},
	}
	p, err := show.NewPlayer(sh.Sign, eng, lim, rand.New(rand.NewSource(seed)), sh.Program, sh.Options, hooks)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Player = p
	lg.Debug().Int64("seed", seed).Int("leds", n).Str("driver", cfg.Driver).Msg("core ready")
	return c, nil
}

// termCols lays the preview out roughly square.
func termCols(n int) int {
	cols := 1
	for cols*cols < n {
		cols++
	}
	return cols
}

// Close releases the sinks in reverse order of opening.
func (c *Core) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
