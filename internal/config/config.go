package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jrudolph/twaeng-pop-sign/internal/show"
	"github.com/jrudolph/twaeng-pop-sign/internal/walker"
)

// Drivers accepted in Config.Driver.
const (
	DriverSPI     = "spi"     // nrzled over a periph.io SPI port
	DriverConsole = "console" // periph.io screen1d ANSI line
	DriverTerm    = "term"    // tcell preview
	DriverLog     = "log"     // frame summaries in the log
	DriverNone    = "none"
)

type PowerCfg struct {
	LimitAmps float64 `yaml:"limit_amps"`
	WhiteCap  float64 `yaml:"white_cap"`
	ChanMA    float64 `yaml:"chan_ma"`
}

type SPI struct {
	Dev      string `yaml:"dev"`      // e.g. /dev/spidev0.0, "" for the first port
	FreqHz   int    `yaml:"freq_hz"`  // LED data rate, 800000 for WS2812
	Channels int    `yaml:"channels"` // 3 for RGB strings, 4 for RGBW
}

type Backlight struct {
	Pin    string `yaml:"pin"` // gpioreg name, e.g. GPIO22; "" disables
	FreqHz int    `yaml:"freq_hz"`
}

// Rule paints Color on the nodes shared by all Glyphs.
type Rule struct {
	Glyphs []string `yaml:"glyphs,flow"`
	Color  string   `yaml:"color"` // #rrggbb
}

type Rocket struct {
	Name   string `yaml:"name"`
	Offset int    `yaml:"offset"`
	Path   []int  `yaml:"path,flow"`
	Glyph  string `yaml:"glyph"`
	Color  string `yaml:"color"`
}

type Group struct {
	Name    string   `yaml:"name"`
	Rockets []Rocket `yaml:"rockets"`
}

// Sign is the static description of the LED sign. When LEDs is zero the
// whole section takes the built-in Twaeng Pop sign.
type Sign struct {
	LEDs      int              `yaml:"leds"`
	StartNode int              `yaml:"start_node"`
	Topology  map[int][]int    `yaml:"topology"`
	Glyphs    map[string][]int `yaml:"glyphs"`
	Rules     []Rule           `yaml:"rules"`
	Groups    []Group          `yaml:"groups"`
}

// RocketTiming tunes the fireworks.
type RocketTiming struct {
	AdvanceEvery int    `yaml:"advance_every"`
	RampWindow   int    `yaml:"ramp_window"`
	GlowTicks    int    `yaml:"glow_ticks"`
	Highlight    *int   `yaml:"highlight"` // 0 leaves the backlight alone
	TravelBase   string `yaml:"travel_base"`
	SparkleMax   string `yaml:"sparkle_max"`
}

// Letters tunes the fade-up and glow phases. Both fields accept 0: no
// flicker, and no backlight at the end of a fade-up.
type Letters struct {
	Flicker   *int `yaml:"flicker"`
	Backlight *int `yaml:"backlight"`
}

type Config struct {
	Driver string  `yaml:"driver"`
	Seed   int64   `yaml:"seed"`
	Speed  float64 `yaml:"speed"`          // pause multiplier, 1 is real time
	Addr   string  `yaml:"addr,omitempty"` // websocket/diagnostics listen address

	SPI       SPI       `yaml:"spi,omitempty"`
	Backlight Backlight `yaml:"backlight,omitempty"`
	Power     PowerCfg  `yaml:"power"`

	Sign    Sign            `yaml:"sign"`
	Letters Letters         `yaml:"letters"`
	Rocket  RocketTiming    `yaml:"rocket"`
	Worm    walker.Schedule `yaml:"worm"`
	Program show.Program    `yaml:"program"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes YAML and fills every unset field with its default.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks the fields that Build does not.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSPI, DriverConsole, DriverTerm, DriverLog, DriverNone:
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	if c.Speed < 0 {
		return fmt.Errorf("config: negative speed %v", c.Speed)
	}
	if c.SPI.Channels != 3 && c.SPI.Channels != 4 {
		return fmt.Errorf("config: spi channels must be 3 or 4, got %d", c.SPI.Channels)
	}
	if c.Letters.Flicker != nil && (*c.Letters.Flicker < 0 || *c.Letters.Flicker > 64) {
		return fmt.Errorf("config: letters.flicker %d not in [0,64]", *c.Letters.Flicker)
	}
	if c.Letters.Backlight != nil && (*c.Letters.Backlight < 0 || *c.Letters.Backlight > 255) {
		return fmt.Errorf("config: letters.backlight %d not in [0,255]", *c.Letters.Backlight)
	}
	if c.Rocket.Highlight != nil && (*c.Rocket.Highlight < 0 || *c.Rocket.Highlight > 255) {
		return fmt.Errorf("config: rocket.highlight %d not in [0,255]", *c.Rocket.Highlight)
	}
	if c.Power.WhiteCap < 0 || c.Power.WhiteCap > 1 {
		return fmt.Errorf("config: white_cap %v not in [0,1]", c.Power.WhiteCap)
	}
	return nil
}
