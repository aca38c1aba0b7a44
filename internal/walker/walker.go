// Package walker implements the "worm": a random walk across the sign's
// topology that speeds up over the life of a phase and leaves a colored trail.
package walker

import (
	"fmt"
	"math/rand"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
)

// MaxDraws bounds the random neighbor draws before falling back to the
// first neighbor.
const MaxDraws = 10

// None marks an empty trail slot.
const None = -1

// Schedule controls the walker's cadence, in ticks.
type Schedule struct {
	StartSpeed   int `yaml:"start_speed"`   // ticks per hop at phase start
	MinSpeed     int `yaml:"min_speed"`     // floor for the speed
	SpeedupEvery int `yaml:"speedup_every"` // speed drops by one this often
	DecayEvery   int `yaml:"decay_every"`   // frame decay cadence
}

// DefaultSchedule starts at one hop per 60 ticks and accelerates to one per 4.
func DefaultSchedule() Schedule {
	return Schedule{StartSpeed: 60, MinSpeed: 4, SpeedupEvery: 60, DecayEvery: 6}
}

func (s Schedule) validate() error {
	if s.StartSpeed <= 0 || s.MinSpeed <= 0 || s.SpeedupEvery <= 0 || s.DecayEvery <= 0 {
		return fmt.Errorf("walker: schedule values must be positive: %+v", s)
	}
	if s.MinSpeed > s.StartSpeed {
		return fmt.Errorf("walker: min speed %d above start speed %d", s.MinSpeed, s.StartSpeed)
	}
	return nil
}

// State is the walker's position, its last visited nodes (most recent first)
// and the current ticks-per-hop.
type State struct {
	Pos   int
	Trail [3]int
	Speed int
}

// NewState places a walker on start with an empty trail.
func NewState(start, speed int) State {
	return State{Pos: start, Trail: [3]int{None, None, None}, Speed: speed}
}

// NextPos picks the node to hop to from at. A node with a single neighbor
// always moves there; otherwise up to MaxDraws uniform draws skip the nodes
// in exclude, and the first neighbor is used when all draws fail. A node
// without neighbors keeps the walker in place.
func NextPos(topo *topology.Topology, at int, exclude [2]int, rng *rand.Rand) int {
	nbs := topo.Neighbors(at)
	switch len(nbs) {
	case 0:
		return at
	case 1:
		return nbs[0]
	}
	for i := 0; i < MaxDraws; i++ {
		cand := nbs[rng.Intn(len(nbs))]
		if cand != exclude[0] && cand != exclude[1] && topo.Valid(cand) {
			return cand
		}
	}
	return nbs[0]
}

// Advance applies one tick of the speed schedule and, on hop ticks, moves
// the walker. It does not touch any frame.
func Advance(st State, topo *topology.Topology, sched Schedule, tick int, rng *rand.Rand) State {
	if st.Speed > sched.MinSpeed && tick%sched.SpeedupEvery == 0 {
		st.Speed--
	}
	if st.Speed > 0 && tick%st.Speed == 0 {
		next := NextPos(topo, st.Pos, [2]int{st.Trail[0], st.Trail[1]}, rng)
		if next != st.Pos {
			st.Trail = [3]int{st.Pos, st.Trail[0], st.Trail[1]}
			st.Pos = next
		}
	}
	return st
}

// Walker binds a State to its topology, schedule, palette and random source.
type Walker struct {
	topo    *topology.Topology
	sched   Schedule
	palette Palette
	start   int
	rng     *rand.Rand

	st State
}

// New validates the configuration and returns a walker reset to start.
func New(topo *topology.Topology, sched Schedule, palette Palette, start int, rng *rand.Rand) (*Walker, error) {
	if topo == nil {
		return nil, fmt.Errorf("walker: nil topology")
	}
	if !topo.Valid(start) {
		return nil, fmt.Errorf("walker: start node %d out of range [0,%d)", start, topo.Len())
	}
	if err := sched.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("walker: nil random source")
	}
	w := &Walker{topo: topo, sched: sched, palette: palette, start: start, rng: rng}
	w.Reset()
	return w, nil
}

// Reset moves the walker back to its start node at the starting speed.
func (w *Walker) Reset() { w.st = NewState(w.start, w.sched.StartSpeed) }

// State returns a copy of the current state.
func (w *Walker) State() State { return w.st }

// Schedule returns the configured cadence.
func (w *Walker) Schedule() Schedule { return w.sched }

// Tick advances the walker by one tick: speed schedule, periodic decay of the
// engine's frame, hop, then the trail is repainted.
func (w *Walker) Tick(tick int, e *render.Engine) {
	next := Advance(w.st, w.topo, w.sched, tick, w.rng)
	if tick%w.sched.DecayEvery == 0 {
		e.Decay()
	}
	w.st = next
	w.Paint(tick, e.Frame)
}

// Paint writes the trail (oldest last) and then the head into fb.
func (w *Walker) Paint(tick int, fb *render.Buffer) {
	for i := 0; i < len(w.st.Trail); i++ {
		fb.Set(w.st.Trail[i], w.palette.Color(w.st.Speed, tick, i+1))
	}
	fb.Set(w.st.Pos, w.palette.Color(w.st.Speed, tick, 0))
}
