// Package tests holds wiring patterns for bringing up a freshly soldered sign.
package tests

import (
	"context"
	"fmt"
	"time"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/timing"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	GlyphSweep Kind = "glyphs"
)

// Kinds lists the runnable patterns.
func Kinds() []Kind { return []Kind{IndexSweep, RGBTest, GlyphSweep} }

type Plan struct {
	Kind Kind
	// Pause between steps; 0 means DefaultPause.
	Pause time.Duration
}

const DefaultPause = 300 * time.Millisecond

type Runner struct {
	plan    Plan
	letters *sign.Letters
	glyphs  []string
	step    int
}

func NewRunner(plan Plan, s *sign.Sign) (*Runner, error) {
	switch plan.Kind {
	case IndexSweep, RGBTest, GlyphSweep:
	default:
		return nil, fmt.Errorf("tests: unknown pattern %q", plan.Kind)
	}
	if plan.Pause <= 0 {
		plan.Pause = DefaultPause
	}
	r := &Runner{plan: plan, letters: s.Letters}
	if plan.Kind == GlyphSweep {
		r.glyphs = s.Letters.GlyphNames()
	}
	return r, nil
}

func (r *Runner) Kind() Kind { return r.plan.Kind }

// Label describes the step that the last call to Step painted.
func (r *Runner) Label() string {
	i := r.step - 1
	if i < 0 {
		return ""
	}
	switch r.plan.Kind {
	case IndexSweep:
		return fmt.Sprintf("node %d", i)
	case RGBTest:
		return [...]string{"red", "green", "blue"}[i%3]
	case GlyphSweep:
		if i < len(r.glyphs) {
			return r.glyphs[i]
		}
	}
	return ""
}

// Step fills buf; returns false when complete.
func (r *Runner) Step(buf []render.Color) bool {
	n := len(buf)
	for i := range buf {
		buf[i] = render.Black
	}

	switch r.plan.Kind {
	case IndexSweep:
		idx := r.step
		if idx >= n {
			return false
		}
		buf[idx] = render.White
	case RGBTest:
		if r.step >= 3 {
			return false
		}
		c := [...]render.Color{render.RGB(255, 0, 0), render.RGB(0, 255, 0), render.RGB(0, 0, 255)}[r.step]
		for i := range buf {
			buf[i] = c
		}
	case GlyphSweep:
		if r.step >= len(r.glyphs) {
			return false
		}
		m, _ := r.letters.Glyph(r.glyphs[r.step])
		for _, i := range m.Nodes() {
			if i < n {
				buf[i] = render.White
			}
		}
	default:
		return false
	}
	r.step++
	return true
}

// Run shows every step of the pattern on e with the backlight at full,
// then blanks the sign. onStep may be nil.
func (r *Runner) Run(ctx context.Context, e *render.Engine, lim timing.Limiter, onStep func(label string)) error {
	buf := make([]render.Color, e.Len())
	e.SetBacklight(255)
	for r.Step(buf) {
		if onStep != nil {
			onStep(r.Label())
		}
		if err := e.Show(buf); err != nil {
			return err
		}
		if err := lim.Wait(ctx, r.plan.Pause); err != nil {
			return err
		}
	}
	e.SetBacklight(0)
	for i := range buf {
		buf[i] = render.Black
	}
	return e.Show(buf)
}
