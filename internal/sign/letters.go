// Package sign assembles the static data of a sign: its topology, the letter
// image and the rocket groups that burst into the letters.
package sign

import (
	"fmt"
	"sort"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
)

// Rule paints Color on every node that lies in all of Glyphs. Rules are
// evaluated in order and the first match wins.
type Rule struct {
	Glyphs []string
	Color  render.Color
}

// Letters is the static letter image of the sign.
type Letters struct {
	glyphs map[string]topology.Mask
	image  []render.Color
}

// NewLetters resolves rules against the named glyph masks (all over n nodes)
// and precomputes the image.
func NewLetters(n int, glyphs map[string]topology.Mask, rules []Rule) (*Letters, error) {
	for name, m := range glyphs {
		if len(m) != n {
			return nil, fmt.Errorf("glyph %q covers %d nodes, sign has %d", name, len(m), n)
		}
	}
	masks := make([]topology.Mask, len(rules))
	for i, r := range rules {
		if len(r.Glyphs) == 0 {
			return nil, fmt.Errorf("rule %d names no glyph", i)
		}
		var m topology.Mask
		for _, g := range r.Glyphs {
			gm, ok := glyphs[g]
			if !ok {
				return nil, fmt.Errorf("rule %d: unknown glyph %q", i, g)
			}
			if m == nil {
				m = gm
			} else {
				m = m.And(gm)
			}
		}
		masks[i] = m
	}

	img := make([]render.Color, n)
	for node := range img {
		for i, m := range masks {
			if m.Has(node) {
				img[node] = rules[i].Color
				break
			}
		}
	}
	return &Letters{glyphs: glyphs, image: img}, nil
}

// Len returns the node count.
func (l *Letters) Len() int { return len(l.image) }

// Glyph returns the mask of a named glyph.
func (l *Letters) Glyph(name string) (topology.Mask, bool) {
	m, ok := l.glyphs[name]
	return m, ok
}

// GlyphNames returns the glyph names in sorted order.
func (l *Letters) GlyphNames() []string {
	names := make([]string, 0, len(l.glyphs))
	for name := range l.glyphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Image returns a copy of the full-intensity letter image.
func (l *Letters) Image() []render.Color {
	out := make([]render.Color, len(l.image))
	copy(out, l.image)
	return out
}

// Paint writes the letter image into fb.
func (l *Letters) Paint(fb *render.Buffer) { fb.CopyFrom(l.image) }

// Background returns the dim glow layer: every channel v>>3, at least 1.
func (l *Letters) Background() []render.Color {
	out := make([]render.Color, len(l.image))
	render.DimCopy(out, l.image)
	return out
}

// Faded writes the letter image scaled by level/64 into dst. level is
// called once per lit node, in node order; unlit nodes are black.
func (l *Letters) Faded(dst []render.Color, level func() int) {
	for i := range dst {
		if i >= len(l.image) || l.image[i].IsBlack() {
			dst[i] = render.Black
			continue
		}
		lv := level()
		if lv < 0 {
			lv = 0
		}
		dst[i] = l.image[i].Scale(uint(lv), 6)
	}
}
