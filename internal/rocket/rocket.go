// Package rocket implements the fireworks: scripted entities that travel a
// short path across the sign and then either sparkle on their letter or light
// it up.
package rocket

import (
	"fmt"
	"math/rand"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
)

// MaxPath is the longest path a rocket may travel.
const MaxPath = 6

// Kind tags the rocket's state.
type Kind uint8

const (
	Traveling Kind = iota
	Fizzling
	Glowing
	Done
)

func (k Kind) String() string {
	switch k {
	case Traveling:
		return "traveling"
	case Fizzling:
		return "fizzling"
	case Glowing:
		return "glowing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// State is the rocket's tagged state. Cursor is kept once travel ends;
// Targets is only meaningful while Fizzling (redrawn at every advance event)
// and Elapsed while Glowing.
type State struct {
	Kind    Kind
	Cursor  int
	Targets [2]int
	Elapsed int
}

// Timing holds the burst-wide constants shared by every rocket.
type Timing struct {
	AdvanceEvery int          // ticks between advance events
	RampWindow   int          // travel color doubles every RampWindow ticks
	GlowTicks    int          // ticks a glowing letter is painted
	TravelBase   render.Color // travel color at launch
	SparkleMax   render.Color // exclusive per-channel ceiling of sparkle colors
	Highlight    int          // backlight level while glowing or fizzling
}

// DefaultTiming matches the Twaeng Pop sign.
func DefaultTiming() Timing {
	return Timing{
		AdvanceEvery: 140,
		RampWindow:   300,
		GlowTicks:    199,
		TravelBase:   render.RGB(25, 5, 0),
		SparkleMax:   render.RGB(255, 130, 80),
		Highlight:    150,
	}
}

// Validate checks the cadence values.
func (tm Timing) Validate() error {
	if tm.AdvanceEvery <= 0 || tm.RampWindow <= 0 || tm.GlowTicks <= 0 {
		return fmt.Errorf("rocket: timing values must be positive: %+v", tm)
	}
	return nil
}

// Spec is the static script of one rocket.
type Spec struct {
	Name        string
	Offset      int // first tick at which the rocket reacts to advance events
	Path        []int
	Mask        topology.Mask // the letter the rocket resolves into
	LetterColor render.Color
}

// Rocket is one scripted entity.
type Rocket struct {
	spec   Spec
	fizzle bool
	color  render.Color
	st     State
}

// New validates spec against a sign of n nodes.
func New(spec Spec, n int) (*Rocket, error) {
	if len(spec.Path) == 0 || len(spec.Path) > MaxPath {
		return nil, fmt.Errorf("rocket %q: path length %d not in [1,%d]", spec.Name, len(spec.Path), MaxPath)
	}
	for _, p := range spec.Path {
		if p < 0 || p >= n {
			return nil, fmt.Errorf("rocket %q: path node %d out of range [0,%d)", spec.Name, p, n)
		}
	}
	if len(spec.Mask) != n {
		return nil, fmt.Errorf("rocket %q: mask covers %d nodes, sign has %d", spec.Name, len(spec.Mask), n)
	}
	if spec.Mask.Count() < 2 {
		return nil, fmt.Errorf("rocket %q: letter mask needs at least 2 nodes", spec.Name)
	}
	if spec.Offset < 0 {
		return nil, fmt.Errorf("rocket %q: negative offset %d", spec.Name, spec.Offset)
	}
	spec.Path = append([]int(nil), spec.Path...)
	return &Rocket{spec: spec}, nil
}

// Spec returns the rocket's script.
func (r *Rocket) Spec() Spec { return r.spec }

// State returns the current state.
func (r *Rocket) State() State { return r.st }

// Color returns the current travel color.
func (r *Rocket) Color() render.Color { return r.color }

// Fizzle reports whether the rocket sparkles instead of glowing.
func (r *Rocket) Fizzle() bool { return r.fizzle }

// Reset puts the rocket back on the launch pad.
func (r *Rocket) Reset(fizzle bool, tm Timing) {
	r.fizzle = fizzle
	r.color = tm.TravelBase
	r.st = State{Kind: Traveling}
}

// Step handles one advance event at tick. A traveling rocket moves one node
// and brightens; the event that lands it on the last path node resolves it
// into Fizzling or Glowing. Every later event moves a fizzling rocket's
// sparkle to two fresh nodes of its letter.
func (r *Rocket) Step(tick int, tm Timing, rng *rand.Rand) {
	if tick < r.spec.Offset {
		return
	}
	switch r.st.Kind {
	case Fizzling:
		r.st.Targets = pickTargets(r.spec.Mask, rng)
		return
	case Traveling:
	default:
		return
	}
	last := len(r.spec.Path) - 1
	if r.st.Cursor < last {
		r.st.Cursor++
		r.color = tm.TravelBase.Shl(uint((tick - r.spec.Offset) / tm.RampWindow))
	}
	if r.st.Cursor < last {
		return
	}
	if r.fizzle {
		r.st.Kind = Fizzling
		r.st.Targets = pickTargets(r.spec.Mask, rng)
		return
	}
	r.st.Kind = Glowing
	r.st.Elapsed = 0
}

// Paint draws the rocket into fb for the current tick and reports whether
// the backlight should be raised to its highlight level.
func (r *Rocket) Paint(fb *render.Buffer, tm Timing, rng *rand.Rand) bool {
	switch r.st.Kind {
	case Traveling:
		fb.Set(r.spec.Path[r.st.Cursor], r.color)
		return false
	case Fizzling:
		for _, n := range r.st.Targets {
			fb.Set(n, sparkle(tm.SparkleMax, rng))
		}
		return true
	case Glowing:
		for i, on := range r.spec.Mask {
			if on {
				fb.Set(i, r.spec.LetterColor)
			}
		}
		r.st.Elapsed++
		if r.st.Elapsed >= tm.GlowTicks {
			r.st.Kind = Done
		}
		return true
	}
	return false
}

// Tick runs the advance event when tick falls on the cadence, then paints.
func (r *Rocket) Tick(tick int, fb *render.Buffer, tm Timing, rng *rand.Rand) bool {
	if tick%tm.AdvanceEvery == 0 {
		r.Step(tick, tm, rng)
	}
	return r.Paint(fb, tm, rng)
}

// pickTargets draws random nodes until two distinct masked nodes are found.
// The mask is known to hold at least two nodes.
func pickTargets(mask topology.Mask, rng *rand.Rand) [2]int {
	var out [2]int
	for found := 0; found < 2; {
		cand := rng.Intn(len(mask))
		if !mask[cand] || (found == 1 && cand == out[0]) {
			continue
		}
		out[found] = cand
		found++
	}
	return out
}

func sparkle(ceil render.Color, rng *rand.Rand) render.Color {
	return render.Color{R: randChan(ceil.R, rng), G: randChan(ceil.G, rng), B: randChan(ceil.B, rng)}
}

func randChan(ceil uint8, rng *rand.Rand) uint8 {
	if ceil == 0 {
		return 0
	}
	return uint8(rng.Intn(int(ceil)))
}
