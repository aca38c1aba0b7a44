package rocket

import (
	"context"
	"math/rand"
	"time"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/timing"
)

// Group is a set of rockets sharing one timer and one frame.
type Group struct {
	Name    string
	Rockets []*Rocket
}

// NewGroup bundles rockets under a name.
func NewGroup(name string, rockets ...*Rocket) *Group {
	return &Group{Name: name, Rockets: rockets}
}

// Reset relaunches every rocket with the given fizzle flag.
func (g *Group) Reset(fizzle bool, tm Timing) {
	for _, r := range g.Rockets {
		r.Reset(fizzle, tm)
	}
}

// Tick advances (on cadence) and paints every rocket in order; later rockets
// win on shared nodes. It reports whether any rocket wants the highlight.
func (g *Group) Tick(tick int, fb *render.Buffer, tm Timing, rng *rand.Rand) bool {
	if tick%tm.AdvanceEvery == 0 {
		for _, r := range g.Rockets {
			r.Step(tick, tm, rng)
		}
	}
	highlight := false
	for _, r := range g.Rockets {
		if r.Paint(fb, tm, rng) {
			highlight = true
		}
	}
	return highlight
}

// BurstConfig sizes one fireworks burst.
type BurstConfig struct {
	Ticks      int
	DecayEvery int
	Pause      time.Duration
	Timing     Timing
}

// DefaultBurst is 2200 ticks of 1ms, decaying every 20 ticks.
func DefaultBurst() BurstConfig {
	return BurstConfig{Ticks: 2200, DecayEvery: 20, Pause: time.Millisecond, Timing: DefaultTiming()}
}

// Burst resets the group and runs it for cfg.Ticks ticks (1..Ticks), decaying
// the frame on its cadence and committing every tick. Sink errors go to
// onErr and do not stop the burst. Only cancellation of ctx during a pause
// ends it early.
func (g *Group) Burst(ctx context.Context, e *render.Engine, lim timing.Limiter, rng *rand.Rand, fizzle bool, cfg BurstConfig, onErr func(error)) error {
	g.Reset(fizzle, cfg.Timing)
	for t := 1; t <= cfg.Ticks; t++ {
		if cfg.DecayEvery > 0 && t%cfg.DecayEvery == 0 {
			e.Decay()
		}
		if g.Tick(t, e.Frame, cfg.Timing, rng) {
			e.SetBacklight(cfg.Timing.Highlight)
		}
		if err := e.Commit(); err != nil && onErr != nil {
			onErr(err)
		}
		if err := lim.Wait(ctx, cfg.Pause); err != nil {
			return err
		}
	}
	return nil
}
