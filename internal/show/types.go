// Package show plays a program of phases on a sign: letter fade-up and glow
// written straight to the string, and fireworks, worm and drain phases driven
// through the engine's frame buffer.
package show

import (
	"fmt"
	"time"

	"github.com/jrudolph/twaeng-pop-sign/internal/rocket"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/walker"
)

// Kind selects what a phase does.
type Kind string

const (
	FadeUp    Kind = "fade_up"
	Glow      Kind = "glow"
	Fireworks Kind = "fireworks"
	Worm      Kind = "worm"
	Drain     Kind = "drain"
)

// direct phases bypass the frame buffer.
func (k Kind) direct() bool { return k == FadeUp || k == Glow }

// Phase is one step of a program. Zero Steps, Pause and DecayEvery take the
// defaults of the kind.
type Phase struct {
	Kind       Kind          `yaml:"kind" json:"kind"`
	Steps      int           `yaml:"steps,omitempty" json:"steps,omitempty"`
	Pause      time.Duration `yaml:"pause,omitempty" json:"pause,omitempty"`
	DecayEvery int           `yaml:"decay_every,omitempty" json:"decayEvery,omitempty"`
	Group      string        `yaml:"group,omitempty" json:"group,omitempty"`
	Fizzle     bool          `yaml:"fizzle,omitempty" json:"fizzle,omitempty"`
}

func (p Phase) String() string {
	if p.Kind == Fireworks {
		return fmt.Sprintf("%s(%s,fizzle=%t)", p.Kind, p.Group, p.Fizzle)
	}
	return string(p.Kind)
}

// withDefaults fills zero fields.
func (p Phase) withDefaults() Phase {
	var steps, every int
	var pause time.Duration
	switch p.Kind {
	case FadeUp:
		steps, pause = 64, 30*time.Millisecond
	case Glow:
		steps, pause = 200, 100*time.Millisecond
	case Fireworks:
		steps, pause, every = 2200, time.Millisecond, 20
	case Worm:
		steps, pause = 4800, 5*time.Millisecond
	case Drain:
		steps, pause, every = 800, time.Millisecond, 20
	}
	if p.Steps == 0 {
		p.Steps = steps
	}
	if p.Pause == 0 {
		p.Pause = pause
	}
	if p.DecayEvery == 0 {
		p.DecayEvery = every
	}
	return p
}

// Program is the full show.
type Program struct {
	Loop   bool    `yaml:"loop" json:"loop"`
	Phases []Phase `yaml:"phases" json:"phases"`
}

// DefaultProgram is the sign's original show: letters fade up and glow, five
// fireworks bursts, letters again, the worm over the dimmed letters and a
// drain to black.
func DefaultProgram() Program {
	fw := func(group string, fizzle bool) Phase {
		return Phase{Kind: Fireworks, Group: group, Fizzle: fizzle}
	}
	return Program{
		Loop: true,
		Phases: []Phase{
			{Kind: FadeUp},
			{Kind: Glow},
			fw(sign.GroupColored, false),
			fw(sign.GroupColored, true),
			fw(sign.GroupColored, false),
			fw(sign.GroupWhite, false),
			fw(sign.GroupColored, false),
			{Kind: FadeUp},
			{Kind: Glow},
			{Kind: Worm},
			{Kind: Drain},
		},
	}
}

// Options are the tuning values shared by all phases.
type Options struct {
	Flicker   int // glow flicker amplitude out of 64
	Backlight int // backlight level reached at the end of a fade-up
	Rocket    rocket.Timing
	Worm      walker.Schedule
	Palette   walker.Palette
}

// DefaultOptions matches the Twaeng Pop sign.
func DefaultOptions() Options {
	return Options{
		Flicker:   12,
		Backlight: 80,
		Rocket:    rocket.DefaultTiming(),
		Worm:      walker.DefaultSchedule(),
		Palette:   walker.DefaultPalette(),
	}
}

// PlayerState enumerates player states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
)

// Hooks are optional callbacks into the embedding application.
type Hooks struct {
	// OnPhase fires when phase i of the program starts.
	OnPhase func(i int, p Phase)
	// OnFrameError receives sink errors; the show keeps going.
	OnFrameError func(err error)
}
