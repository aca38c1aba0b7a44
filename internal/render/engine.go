package render

import (
	"errors"
	"time"
)

// Decay defaults: 14/16 per step.
const (
	DefaultDecayNum   = 14
	DefaultDecayShift = 4
)

// Engine owns the authoritative frame, the optional background glow layer and
// the output path to the driver.
type Engine struct {
	Frame *Buffer
	Drv   Driver
	Dim   Dimmer

	DecayNum, DecayShift uint

	background []Color // nil when no glow layer is active
	out        []Color
	backlight  int

	post PostPipeline

	// Frames counts committed frames.
	Frames uint64

	// metrics (last durations in ms)
	Last struct {
		PostMS  float64
		TotalMS float64
	}
}

// PostPipeline groups post stages applied to the outgoing frame only; the
// authoritative frame is never modified by them.
type PostPipeline struct {
	Limiter func([]Color)
}

// NewEngine allocates buffers for n nodes.
func NewEngine(n int, drv Driver) (*Engine, error) {
	if n <= 0 {
		return nil, errors.New("invalid led count")
	}
	return &Engine{
		Frame:      NewBuffer(n),
		Drv:        drv,
		DecayNum:   DefaultDecayNum,
		DecayShift: DefaultDecayShift,
		out:        make([]Color, n),
	}, nil
}

// Len returns the node count.
func (e *Engine) Len() int { return e.Frame.Len() }

func (e *Engine) SetPost(p PostPipeline) { e.post = p }

// SetBackground installs a glow layer composited under the frame on every
// Commit. The pixels are copied.
func (e *Engine) SetBackground(bg []Color) {
	if e.background == nil {
		e.background = make([]Color, e.Len())
	}
	for i := range e.background {
		e.background[i] = Black
	}
	copy(e.background, bg)
}

// ClearBackground disables compositing.
func (e *Engine) ClearBackground() { e.background = nil }

// Background returns the active glow layer, or nil.
func (e *Engine) Background() []Color { return e.background }

// Backlight returns the current backlight fade level.
func (e *Engine) Backlight() int { return e.backlight }

// SetBacklight sets the backlight fade level; negative values clamp to 0.
func (e *Engine) SetBacklight(level int) {
	if level < 0 {
		level = 0
	}
	e.backlight = level
}

// Decay fades the frame and the backlight by the same ratio.
func (e *Engine) Decay() {
	e.Frame.Decay(e.DecayNum, e.DecayShift)
	e.backlight = (e.backlight * int(e.DecayNum)) >> e.DecayShift
}

// Commit renders the frame (composited with the background when one is set)
// to the driver.
func (e *Engine) Commit() error {
	if e.background != nil {
		Composite(e.out, e.Frame.Pixels(), e.background)
	} else {
		copy(e.out, e.Frame.Pixels())
	}
	return e.write(e.out)
}

// Show sends px directly, bypassing the frame buffer. Missing pixels are black.
func (e *Engine) Show(px []Color) error {
	n := copy(e.out, px)
	for i := n; i < len(e.out); i++ {
		e.out[i] = Black
	}
	return e.write(e.out)
}

func (e *Engine) write(buf []Color) error {
	start := time.Now()
	if e.post.Limiter != nil {
		e.post.Limiter(buf)
	}
	e.Last.PostMS = float64(time.Since(start).Microseconds()) / 1000.0

	e.Frames++
	var errs []error
	if e.Drv != nil {
		if err := e.Drv.Write(buf); err != nil {
			errs = append(errs, err)
		}
	}
	if e.Dim != nil {
		if err := e.Dim.SetLevel(e.backlight); err != nil {
			errs = append(errs, err)
		}
	}
	e.Last.TotalMS = float64(time.Since(start).Microseconds()) / 1000.0
	return errors.Join(errs...)
}
