package walker

import "github.com/jrudolph/twaeng-pop-sign/internal/render"

// Pair is the color of the walker's head and of its trail.
type Pair struct {
	Head render.Color
	Tail render.Color
}

// Palette maps the walker's speed and the phase time to trail colors. The
// worm glows cool while slow, turns warm, then hot, and finally cross-blends
// from BlendFrom into Final over [BlendStart, BlendEnd].
type Palette struct {
	Cool, Warm, Hot Pair
	BlendFrom       Pair
	Final           Pair

	CoolAbove  int // speeds above this use Cool
	WarmAbove  int // speeds above this use Warm
	BlendStart int
	BlendEnd   int
}

// DefaultPalette is the green-to-magenta worm of the Twaeng Pop sign.
func DefaultPalette() Palette {
	return Palette{
		Cool:       Pair{Head: render.RGB(28, 70, 6), Tail: render.RGB(100, 40, 0)},
		Warm:       Pair{Head: render.RGB(70, 140, 20), Tail: render.RGB(150, 60, 10)},
		Hot:        Pair{Head: render.RGB(40, 20, 200), Tail: render.RGB(255, 130, 80)},
		BlendFrom:  Pair{Head: render.RGB(255, 130, 80), Tail: render.RGB(40, 20, 200)},
		Final:      Pair{Head: render.RGB(0, 255, 0), Tail: render.RGB(255, 0, 255)},
		CoolAbove:  15,
		WarmAbove:  7,
		BlendStart: 3500,
		BlendEnd:   4000,
	}
}

// Color returns the color for trail slot idx (0 is the head).
func (p Palette) Color(speed, tick, idx int) render.Color {
	pick := func(pr Pair) render.Color {
		if idx != 0 {
			return pr.Tail
		}
		return pr.Head
	}
	switch {
	case speed > p.CoolAbove:
		return pick(p.Cool)
	case speed > p.WarmAbove:
		return pick(p.Warm)
	case tick < p.BlendStart:
		return pick(p.Hot)
	case tick < p.BlendEnd:
		return Lerp(p.BlendStart, p.BlendEnd, pick(p.BlendFrom), pick(p.Final), tick)
	default:
		return pick(p.Final)
	}
}

// Interp linearly maps t in [tFrom, tTo] onto [yFrom, yTo] with truncating
// integer division. t is clamped to the window on both sides.
func Interp(tFrom, tTo, yFrom, yTo, t int) int {
	if tTo == tFrom {
		return yTo
	}
	if t > tTo {
		t = tTo
	}
	if t < tFrom {
		t = tFrom
	}
	return yFrom + (yTo-yFrom)*(t-tFrom)/(tTo-tFrom)
}

// Lerp interpolates each channel independently with Interp.
func Lerp(tFrom, tTo int, from, to render.Color, t int) render.Color {
	return render.Color{
		R: uint8(Interp(tFrom, tTo, int(from.R), int(to.R), t)),
		G: uint8(Interp(tFrom, tTo, int(from.G), int(to.G), t)),
		B: uint8(Interp(tFrom, tTo, int(from.B), int(to.B), t)),
	}
}
