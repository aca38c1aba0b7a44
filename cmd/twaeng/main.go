package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/jrudolph/twaeng-pop-sign/internal/app"
	"github.com/jrudolph/twaeng-pop-sign/internal/config"
	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/tests"
	"github.com/jrudolph/twaeng-pop-sign/internal/timing"
)

// logFile is the --log-file handle, closed by closeLogging.
var logFile *os.File

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("twaeng failed")
	}
}

func newApp() *cli.App {
	a := cli.NewApp()
	a.Name = "twaeng"
	a.Usage = "drive the Twaeng Pop LED sign"
	a.Version = "1.0.0"
	a.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "twaeng.yaml",
			Usage: "path to the YAML config; built-in defaults when missing",
		},
		cli.StringFlag{
			Name:  "driver, d",
			Usage: "override the sink: spi | console | term | log | none",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "random seed, 0 for a time based seed",
		},
		cli.Float64Flag{
			Name:  "speed",
			Usage: "pause multiplier, 0.5 plays twice as fast",
		},
		cli.StringFlag{
			Name:  "addr",
			Usage: "serve the websocket preview and diagnostics on this address",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "write JSON logs to this file instead of the console",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "debug logging",
		},
	}
	a.Before = setupLogging
	a.After = closeLogging
	a.Action = runShow
	a.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "play the configured program",
			Action: runShow,
		},
		{
			Name:   "sim",
			Usage:  "play the program once without pausing and report what it did",
			Action: runSim,
		},
		{
			Name:  "test",
			Usage: "light wiring patterns: index_sweep | rgb_channels | glyphs",
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "pause",
					Value: tests.DefaultPause,
					Usage: "time each step stays lit",
				},
			},
			Action: runTest,
		},
		{
			Name:   "config",
			Usage:  "print the effective configuration as YAML",
			Action: dumpConfig,
		},
	}
	return a
}

func setupLogging(c *cli.Context) error {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.GlobalBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if path := c.GlobalString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logFile = f
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return nil
	}
	var out io.Writer = os.Stdout
	if c.GlobalString("driver") == config.DriverTerm {
		// the preview owns the terminal
		out = io.Discard
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	return nil
}

// closeLogging closes the log file and sends later messages (such as the
// final error) to stderr.
func closeLogging(c *cli.Context) error {
	if logFile == nil {
		return nil
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	err := logFile.Close()
	logFile = nil
	return err
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.GlobalString("config")
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warn().Str("path", path).Msg("no config file; using built-in defaults")
		cfg = config.Default()
	case err != nil:
		return nil, err
	}
	if d := c.GlobalString("driver"); d != "" {
		cfg.Driver = d
	}
	if c.GlobalIsSet("seed") {
		cfg.Seed = c.GlobalInt64("seed")
	}
	if c.GlobalIsSet("speed") {
		cfg.Speed = c.GlobalFloat64("speed")
	}
	if a := c.GlobalString("addr"); a != "" {
		cfg.Addr = a
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	core, err := app.InitCore(cfg, app.Options{OnQuit: cancel})
	if err != nil {
		return err
	}
	defer core.Close()

	log.Info().Str("driver", cfg.Driver).Int("phases", len(cfg.Program.Phases)).Bool("loop", cfg.Program.Loop).Msg("show starting")
	return core.Run(ctx)
}

func runSim(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if !c.GlobalIsSet("driver") {
		cfg.Driver = config.DriverLog
	}
	cfg.Program.Loop = false
	ctx, cancel := signalContext()
	defer cancel()

	lim := timing.NewNoOp()
	core, err := app.InitCore(cfg, app.Options{Limiter: timing.Scaled{L: lim, Factor: cfg.Speed}, OnQuit: cancel})
	if err != nil {
		return err
	}
	defer core.Close()

	start := time.Now()
	if err := core.Run(ctx); err != nil {
		return err
	}
	log.Info().
		Uint64("frames", core.Eng.Frames).
		Dur("show_time", lim.Paused).
		Dur("wall", time.Since(start)).
		Msg("simulation done")
	return nil
}

func runTest(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Addr = ""
	ctx, cancel := signalContext()
	defer cancel()

	core, err := app.InitCore(cfg, app.Options{OnQuit: cancel})
	if err != nil {
		return err
	}
	defer core.Close()

	kinds := tests.Kinds()
	if c.NArg() > 0 {
		kinds = kinds[:0]
		for _, a := range c.Args() {
			kinds = append(kinds, tests.Kind(a))
		}
	}
	for _, k := range kinds {
		if err := runPattern(ctx, core.Show.Sign, core.Eng, k, c.Duration("pause")); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
	return nil
}

func runPattern(ctx context.Context, s *sign.Sign, e *render.Engine, k tests.Kind, pause time.Duration) error {
	r, err := tests.NewRunner(tests.Plan{Kind: k, Pause: pause}, s)
	if err != nil {
		return err
	}
	log.Info().Str("pattern", string(k)).Msg("test pattern")
	return r.Run(ctx, e, timing.NewSleeper(), func(label string) {
		log.Debug().Str("pattern", string(k)).Str("step", label).Msg("step")
	})
}

func dumpConfig(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, string(b))
	return err
}
