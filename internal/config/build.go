package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/rocket"
	"github.com/jrudolph/twaeng-pop-sign/internal/show"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
	"github.com/jrudolph/twaeng-pop-sign/internal/walker"
)

// Show is everything the player needs, built from a Config.
type Show struct {
	Sign    *sign.Sign
	Program show.Program
	Options show.Options
	Power   render.PowerLimit
}

// Build parses colors and validates the sign and program. Every error it
// returns is a configuration error.
func (c *Config) Build() (*Show, error) {
	d, err := c.Sign.def()
	if err != nil {
		return nil, err
	}
	s, err := sign.New(d)
	if err != nil {
		return nil, fmt.Errorf("config: sign: %w", err)
	}

	tm := rocket.Timing{
		AdvanceEvery: c.Rocket.AdvanceEvery,
		RampWindow:   c.Rocket.RampWindow,
		GlowTicks:    c.Rocket.GlowTicks,
		Highlight:    valueOr(c.Rocket.Highlight, rocket.DefaultTiming().Highlight),
	}
	if tm.TravelBase, err = ParseColor(c.Rocket.TravelBase); err != nil {
		return nil, fmt.Errorf("config: rocket.travel_base: %w", err)
	}
	if tm.SparkleMax, err = ParseColor(c.Rocket.SparkleMax); err != nil {
		return nil, fmt.Errorf("config: rocket.sparkle_max: %w", err)
	}
	if err := tm.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Program.Validate(s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Show{
		Sign:    s,
		Program: c.Program,
		Options: show.Options{
			Flicker:   valueOr(c.Letters.Flicker, show.DefaultOptions().Flicker),
			Backlight: valueOr(c.Letters.Backlight, show.DefaultOptions().Backlight),
			Rocket:    tm,
			Worm:      c.Worm,
			Palette:   walker.DefaultPalette(),
		},
		Power: render.PowerLimit{
			WhiteCap: c.Power.WhiteCap,
			ChanMA:   c.Power.ChanMA,
			BudgetMA: c.Power.LimitAmps * 1000,
		},
	}, nil
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func (s Sign) def() (sign.Def, error) {
	d := sign.Def{
		LEDs:   s.LEDs,
		Start:  s.StartNode,
		Table:  topology.Table(s.Topology),
		Glyphs: s.Glyphs,
	}
	for i, r := range s.Rules {
		col, err := ParseColor(r.Color)
		if err != nil {
			return d, fmt.Errorf("config: sign.rules[%d]: %w", i, err)
		}
		d.Rules = append(d.Rules, sign.Rule{Glyphs: r.Glyphs, Color: col})
	}
	for _, g := range s.Groups {
		gd := sign.GroupDef{Name: g.Name}
		for _, r := range g.Rockets {
			col, err := ParseColor(r.Color)
			if err != nil {
				return d, fmt.Errorf("config: group %q rocket %q: %w", g.Name, r.Name, err)
			}
			gd.Rockets = append(gd.Rockets, sign.RocketDef{
				Name:   r.Name,
				Offset: r.Offset,
				Path:   r.Path,
				Glyph:  r.Glyph,
				Color:  col,
			})
		}
		d.Groups = append(d.Groups, gd)
	}
	return d, nil
}

// ParseColor reads a #rrggbb (or #rgb) hex color.
func ParseColor(s string) (render.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return render.Black, err
	}
	r, g, b := c.RGB255()
	return render.RGB(r, g, b), nil
}

func hex(c render.Color) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
