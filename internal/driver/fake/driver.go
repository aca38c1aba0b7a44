package fake

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
)

// Driver logs a compact summary of the frame (first node & avg), useful for
// headless runs. Every > 1 logs only every Every-th frame.
type Driver struct {
	Count int
	Every int
	Log   zerolog.Logger
}

func (d *Driver) Write(buf []render.Color) error {
	d.Count++
	if d.Every > 1 && d.Count%d.Every != 0 {
		return nil
	}
	// compute simple average for log
	var r, g, b float64
	for i := range buf {
		r += float64(buf[i].R)
		g += float64(buf[i].G)
		b += float64(buf[i].B)
	}
	n := float64(len(buf))
	if n == 0 {
		n = 1
	}
	var first render.Color
	if len(buf) > 0 {
		first = buf[0]
	}
	d.Log.Debug().
		Int("frame", d.Count).
		Str("avg", fmt.Sprintf("(%.2f,%.2f,%.2f)", r/n, g/n, b/n)).
		Str("first", fmt.Sprintf("#%06x", first.Packed())).
		Msg("frame")
	return nil
}

// Recorder keeps a copy of every frame and backlight level it receives. It
// is a render.Driver and a render.Dimmer. Err, when set, is returned from
// every Write after the frame is recorded.
type Recorder struct {
	mu     sync.Mutex
	frames [][]render.Color
	levels []int
	Err    error
}

func (r *Recorder) Write(buf []render.Color) error {
	f := make([]render.Color, len(buf))
	copy(f, buf)
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
	return r.Err
}

func (r *Recorder) SetLevel(level int) error {
	r.mu.Lock()
	r.levels = append(r.levels, level)
	r.mu.Unlock()
	return nil
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Frames returns the recorded frames.
func (r *Recorder) Frames() [][]render.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Frame returns frame i; negative i counts from the end.
func (r *Recorder) Frame(i int) []render.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 {
		i += len(r.frames)
	}
	if i < 0 || i >= len(r.frames) {
		return nil
	}
	return r.frames[i]
}

// Levels returns the recorded backlight levels.
func (r *Recorder) Levels() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.levels
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.frames, r.levels = nil, nil
	r.mu.Unlock()
}
