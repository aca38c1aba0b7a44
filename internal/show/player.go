package show

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/rocket"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/timing"
	"github.com/jrudolph/twaeng-pop-sign/internal/walker"
)

// Player runs a Program against one engine. It is single threaded: Run owns
// the engine until it returns.
type Player struct {
	sign  *sign.Sign
	eng   *render.Engine
	lim   timing.Limiter
	rng   *rand.Rand
	prog  Program
	opts  Options
	hooks Hooks
	worm  *walker.Walker
	px    []render.Color

	// direct is set while the string shows a directly written image instead
	// of the frame buffer.
	direct bool

	mu    sync.Mutex
	state PlayerState
	idx   int
}

// NewPlayer validates prog against s and binds everything together.
func NewPlayer(s *sign.Sign, e *render.Engine, lim timing.Limiter, rng *rand.Rand, prog Program, opts Options, h Hooks) (*Player, error) {
	if s == nil || e == nil || lim == nil || rng == nil {
		return nil, errors.New("show: sign, engine, limiter and random source are required")
	}
	if e.Len() != s.Topo.Len() {
		return nil, fmt.Errorf("show: engine drives %d nodes, sign has %d", e.Len(), s.Topo.Len())
	}
	if err := prog.Validate(s); err != nil {
		return nil, err
	}
	if err := opts.Rocket.Validate(); err != nil {
		return nil, err
	}
	w, err := walker.New(s.Topo, opts.Worm, opts.Palette, s.Start, rng)
	if err != nil {
		return nil, err
	}
	return &Player{
		sign:   s,
		eng:    e,
		lim:    lim,
		rng:    rng,
		prog:   prog,
		opts:   opts,
		hooks:  h,
		worm:   w,
		px:     make([]render.Color, e.Len()),
		direct: true,
		state:  Idle,
		idx:    -1,
	}, nil
}

// Validate checks that every phase is known and every fireworks group exists.
func (p Program) Validate(s *sign.Sign) error {
	if len(p.Phases) == 0 {
		return errors.New("show: program has no phases")
	}
	for i, ph := range p.Phases {
		switch ph.Kind {
		case FadeUp, Glow, Worm, Drain:
		case Fireworks:
			if _, err := s.Group(ph.Group); err != nil {
				return fmt.Errorf("show: phase %d: %w", i, err)
			}
		default:
			return fmt.Errorf("show: phase %d: unknown kind %q", i, ph.Kind)
		}
		if ph.Steps < 0 || ph.Pause < 0 || ph.DecayEvery < 0 {
			return fmt.Errorf("show: phase %d (%s): negative value", i, ph.Kind)
		}
	}
	return nil
}

// State reports whether Run is active.
func (p *Player) State() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Current returns the index of the running phase, or -1.
func (p *Player) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idx
}

// Run plays the program once, or forever when it loops. It returns nil when a
// non-looping program ends and ctx.Err() when ctx is cancelled; cancellation
// takes effect at the next pause.
func (p *Player) Run(ctx context.Context) error {
	p.setState(Running, -1)
	defer p.setState(Idle, -1)
	for {
		for i, ph := range p.prog.Phases {
			p.setState(Running, i)
			if p.hooks.OnPhase != nil {
				p.hooks.OnPhase(i, ph)
			}
			if err := p.RunPhase(ctx, ph); err != nil {
				return err
			}
		}
		if !p.prog.Loop {
			return nil
		}
	}
}

func (p *Player) setState(s PlayerState, idx int) {
	p.mu.Lock()
	p.state, p.idx = s, idx
	p.mu.Unlock()
}

// RunPhase plays a single phase.
func (p *Player) RunPhase(ctx context.Context, ph Phase) error {
	ph = ph.withDefaults()
	if !ph.Kind.direct() {
		p.enterBuffered(ph.Kind)
	}
	switch ph.Kind {
	case FadeUp:
		return p.fadeUp(ctx, ph)
	case Glow:
		return p.glow(ctx, ph)
	case Fireworks:
		g, err := p.sign.Group(ph.Group)
		if err != nil {
			return err
		}
		cfg := rocket.BurstConfig{Ticks: ph.Steps, DecayEvery: ph.DecayEvery, Pause: ph.Pause, Timing: p.opts.Rocket}
		return g.Burst(ctx, p.eng, p.lim, p.rng, ph.Fizzle, cfg, p.frameError)
	case Worm:
		return p.wormRun(ctx, ph)
	case Drain:
		return p.drain(ctx, ph)
	}
	return fmt.Errorf("show: unknown phase kind %q", ph.Kind)
}

// enterBuffered hands the string back to the frame buffer. Coming from a
// directly written image the buffer is loaded with the letters so the next
// phase fades out of them; only the worm runs over the background glow.
func (p *Player) enterBuffered(k Kind) {
	if p.direct {
		p.sign.Letters.Paint(p.eng.Frame)
		p.direct = false
	}
	if k == Worm {
		p.eng.SetBackground(p.sign.Letters.Background())
	} else {
		p.eng.ClearBackground()
	}
}

func (p *Player) fadeUp(ctx context.Context, ph Phase) error {
	p.direct = true
	for t := 0; t < ph.Steps; t++ {
		lv := t * 64 / ph.Steps
		flicker := lv >> 3
		p.sign.Letters.Faded(p.px, func() int {
			if flicker == 0 {
				return lv
			}
			return lv - p.rng.Intn(flicker)
		})
		p.eng.SetBacklight((p.opts.Backlight * lv) >> 6)
		if err := p.show(ctx, ph); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) glow(ctx context.Context, ph Phase) error {
	p.direct = true
	for t := 0; t < ph.Steps; t++ {
		p.sign.Letters.Faded(p.px, func() int {
			if p.opts.Flicker <= 0 {
				return 64
			}
			return 64 - p.rng.Intn(p.opts.Flicker)
		})
		if err := p.show(ctx, ph); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) wormRun(ctx context.Context, ph Phase) error {
	p.worm.Reset()
	for t := 0; t < ph.Steps; t++ {
		p.worm.Tick(t, p.eng)
		if err := p.commit(ctx, ph); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) drain(ctx context.Context, ph Phase) error {
	for t := 0; t < ph.Steps; t++ {
		if ph.DecayEvery > 0 && t%ph.DecayEvery == 0 {
			p.eng.Decay()
		}
		if err := p.commit(ctx, ph); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) show(ctx context.Context, ph Phase) error {
	if err := p.eng.Show(p.px); err != nil {
		p.frameError(err)
	}
	return p.lim.Wait(ctx, ph.Pause)
}

func (p *Player) commit(ctx context.Context, ph Phase) error {
	if err := p.eng.Commit(); err != nil {
		p.frameError(err)
	}
	return p.lim.Wait(ctx, ph.Pause)
}

func (p *Player) frameError(err error) {
	if p.hooks.OnFrameError != nil {
		p.hooks.OnFrameError(err)
	}
}
