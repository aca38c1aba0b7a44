// Package timing owns the fixed pause between show ticks.
package timing

import (
	"context"
	"time"
)

// Limiter blocks between ticks. It is the only blocking point of the show.
type Limiter interface {
	// Wait pauses for d, returning early with ctx.Err() on cancellation.
	Wait(ctx context.Context, d time.Duration) error
}

// Sleeper pauses in real time.
type Sleeper struct{}

func NewSleeper() *Sleeper { return &Sleeper{} }

func (s *Sleeper) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewNoOp returns a limiter that never pauses (headless runs and tests).
func NewNoOp() *NoOp { return &NoOp{} }

// NoOp never blocks; it accounts the time it would have slept.
type NoOp struct {
	Ticks  int
	Paused time.Duration
}

func (n *NoOp) Wait(ctx context.Context, d time.Duration) error {
	n.Ticks++
	n.Paused += d
	return ctx.Err()
}

// Scaled wraps a limiter and multiplies every pause by Factor (e.g. 0.5 for
// double speed previews).
type Scaled struct {
	L      Limiter
	Factor float64
}

func (s Scaled) Wait(ctx context.Context, d time.Duration) error {
	if s.Factor > 0 {
		d = time.Duration(float64(d) * s.Factor)
	}
	return s.L.Wait(ctx, d)
}
