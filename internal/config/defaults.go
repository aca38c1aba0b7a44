package config

import (
	"github.com/jrudolph/twaeng-pop-sign/internal/rocket"
	"github.com/jrudolph/twaeng-pop-sign/internal/show"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/walker"
)

// Default is the configuration of the Twaeng Pop sign on a Raspberry Pi.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Driver == "" {
		c.Driver = DriverSPI
	}
	if c.Speed == 0 {
		c.Speed = 1
	}
	if c.SPI.FreqHz == 0 {
		c.SPI.FreqHz = 800000
	}
	if c.SPI.Channels == 0 {
		c.SPI.Channels = 3
	}
	if c.Backlight.FreqHz == 0 {
		c.Backlight.FreqHz = 1000
	}
	if c.Power.ChanMA == 0 {
		c.Power.ChanMA = 20
	}
	if c.Sign.LEDs == 0 {
		c.Sign = signFromDef(sign.Default())
	}
	if c.Letters.Flicker == nil {
		c.Letters.Flicker = intPtr(show.DefaultOptions().Flicker)
	}
	if c.Letters.Backlight == nil {
		c.Letters.Backlight = intPtr(show.DefaultOptions().Backlight)
	}

	rt := rocket.DefaultTiming()
	if c.Rocket.AdvanceEvery == 0 {
		c.Rocket.AdvanceEvery = rt.AdvanceEvery
	}
	if c.Rocket.RampWindow == 0 {
		c.Rocket.RampWindow = rt.RampWindow
	}
	if c.Rocket.GlowTicks == 0 {
		c.Rocket.GlowTicks = rt.GlowTicks
	}
	if c.Rocket.Highlight == nil {
		c.Rocket.Highlight = intPtr(rt.Highlight)
	}
	if c.Rocket.TravelBase == "" {
		c.Rocket.TravelBase = hex(rt.TravelBase)
	}
	if c.Rocket.SparkleMax == "" {
		c.Rocket.SparkleMax = hex(rt.SparkleMax)
	}

	ws := walker.DefaultSchedule()
	if c.Worm.StartSpeed == 0 {
		c.Worm.StartSpeed = ws.StartSpeed
	}
	if c.Worm.MinSpeed == 0 {
		c.Worm.MinSpeed = ws.MinSpeed
	}
	if c.Worm.SpeedupEvery == 0 {
		c.Worm.SpeedupEvery = ws.SpeedupEvery
	}
	if c.Worm.DecayEvery == 0 {
		c.Worm.DecayEvery = ws.DecayEvery
	}

	if len(c.Program.Phases) == 0 {
		c.Program = show.DefaultProgram()
	}
}

func intPtr(v int) *int { return &v }

// signFromDef turns a typed sign description into its config form.
func signFromDef(d sign.Def) Sign {
	s := Sign{
		LEDs:      d.LEDs,
		StartNode: d.Start,
		Topology:  make(map[int][]int, len(d.Table)),
		Glyphs:    make(map[string][]int, len(d.Glyphs)),
	}
	for k, v := range d.Table {
		s.Topology[k] = append([]int(nil), v...)
	}
	for k, v := range d.Glyphs {
		s.Glyphs[k] = append([]int{}, v...)
	}
	for _, r := range d.Rules {
		s.Rules = append(s.Rules, Rule{Glyphs: append([]string(nil), r.Glyphs...), Color: hex(r.Color)})
	}
	for _, g := range d.Groups {
		gc := Group{Name: g.Name}
		for _, r := range g.Rockets {
			gc.Rockets = append(gc.Rockets, Rocket{
				Name:   r.Name,
				Offset: r.Offset,
				Path:   append([]int(nil), r.Path...),
				Glyph:  r.Glyph,
				Color:  hex(r.Color),
			})
		}
		s.Groups = append(s.Groups, gc)
	}
	return s
}
