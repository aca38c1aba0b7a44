package sign

import (
	"fmt"
	"sort"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/rocket"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
)

// RocketDef scripts one rocket by glyph name.
type RocketDef struct {
	Name   string
	Offset int
	Path   []int
	Glyph  string
	Color  render.Color
}

// GroupDef is a named set of rockets that burst together.
type GroupDef struct {
	Name    string
	Rockets []RocketDef
}

// Def is the plain description of a sign, as found in a config file.
type Def struct {
	LEDs   int
	Start  int // where the worm starts
	Table  topology.Table
	Glyphs map[string][]int
	Rules  []Rule
	Groups []GroupDef
}

// Sign is a validated, ready to play Def.
type Sign struct {
	Topo    *topology.Topology
	Letters *Letters
	Start   int
	Groups  map[string]*rocket.Group
}

// New validates d and builds the sign.
func New(d Def) (*Sign, error) {
	topo, err := topology.New(d.LEDs, d.Table)
	if err != nil {
		return nil, err
	}
	if !topo.Valid(d.Start) {
		return nil, fmt.Errorf("start node %d out of range [0,%d)", d.Start, d.LEDs)
	}
	masks := make(map[string]topology.Mask, len(d.Glyphs))
	for name, nodes := range d.Glyphs {
		m, err := topology.MaskOf(d.LEDs, nodes...)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
		masks[name] = m
	}
	letters, err := NewLetters(d.LEDs, masks, d.Rules)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*rocket.Group, len(d.Groups))
	for _, gd := range d.Groups {
		if _, dup := groups[gd.Name]; dup {
			return nil, fmt.Errorf("duplicate rocket group %q", gd.Name)
		}
		g := rocket.NewGroup(gd.Name)
		for _, rd := range gd.Rockets {
			m, ok := masks[rd.Glyph]
			if !ok {
				return nil, fmt.Errorf("group %q rocket %q: unknown glyph %q", gd.Name, rd.Name, rd.Glyph)
			}
			r, err := rocket.New(rocket.Spec{
				Name:        rd.Name,
				Offset:      rd.Offset,
				Path:        rd.Path,
				Mask:        m,
				LetterColor: rd.Color,
			}, d.LEDs)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", gd.Name, err)
			}
			g.Rockets = append(g.Rockets, r)
		}
		groups[gd.Name] = g
	}
	return &Sign{Topo: topo, Letters: letters, Start: d.Start, Groups: groups}, nil
}

// Group looks up a rocket group.
func (s *Sign) Group(name string) (*rocket.Group, error) {
	g, ok := s.Groups[name]
	if !ok {
		return nil, fmt.Errorf("unknown rocket group %q", name)
	}
	return g, nil
}

// GroupNames lists the groups in sorted order.
func (s *Sign) GroupNames() []string {
	out := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
