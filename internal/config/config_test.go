package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/rocket"
	"github.com/jrudolph/twaeng-pop-sign/internal/show"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
)

func TestDefaultBuildsTheTwaengPopSign(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	s, err := c.Build()
	require.NoError(t, err)

	assert.Equal(t, 25, s.Sign.Topo.Len())
	assert.Equal(t, 6, s.Sign.Start)
	assert.Equal(t, sign.ColorP1, s.Sign.Letters.Image()[0])
	assert.Equal(t, show.DefaultProgram(), s.Program)
	assert.Equal(t, show.DefaultOptions(), s.Options)
	assert.False(t, s.Power.Enabled())

	want, err := sign.New(sign.Default())
	require.NoError(t, err)
	assert.Equal(t, want.Letters.Image(), s.Sign.Letters.Image())
	for n := 0; n < 25; n++ {
		assert.Equal(t, want.Topo.Neighbors(n), s.Sign.Topo.Neighbors(n))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Seed = 42
	c.Addr = ":8080"
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
driver: console
seed: 7
speed: 0.5
power:
  limit_amps: 2
worm:
  start_speed: 30
program:
  loop: false
  phases:
    - kind: glow
      steps: 10
      pause: 50ms
    - kind: fireworks
      group: white
      fizzle: true
`))
	require.NoError(t, err)
	assert.Equal(t, DriverConsole, c.Driver)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, 0.5, c.Speed)
	assert.Equal(t, 30, c.Worm.StartSpeed)
	assert.Equal(t, 4, c.Worm.MinSpeed)
	assert.Equal(t, 25, c.Sign.LEDs)
	assert.Equal(t, []show.Phase{
		{Kind: show.Glow, Steps: 10, Pause: 50 * time.Millisecond},
		{Kind: show.Fireworks, Group: "white", Fizzle: true},
	}, c.Program.Phases)

	s, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 2000.0, s.Power.BudgetMA)
	assert.True(t, s.Power.Enabled())
}

func TestZeroTuningIsKept(t *testing.T) {
	c, err := Parse([]byte(`
letters:
  flicker: 0
  backlight: 0
rocket:
  highlight: 0
`))
	require.NoError(t, err)
	s, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Options.Flicker)
	assert.Equal(t, 0, s.Options.Backlight)
	assert.Equal(t, 0, s.Options.Rocket.Highlight)

	c, err = Parse([]byte(`letters: {flicker: 5}`))
	require.NoError(t, err)
	s, err = c.Build()
	require.NoError(t, err)
	assert.Equal(t, 5, s.Options.Flicker)
	assert.Equal(t, show.DefaultOptions().Backlight, s.Options.Backlight)
	assert.Equal(t, rocket.DefaultTiming().Highlight, s.Options.Rocket.Highlight)
}

func TestCustomSignReplacesDefault(t *testing.T) {
	c, err := Parse([]byte(`
sign:
  leds: 4
  start_node: 1
  topology:
    0: [3]
    3: [0]
  glyphs:
    i: [0, 1]
    j: [2, 3]
  rules:
    - glyphs: [i]
      color: "#ff0000"
    - glyphs: [j]
      color: "00f"
  groups:
    - name: pop
      rockets:
        - {name: a, offset: 0, path: [3, 2], glyph: i, color: "#ffffff"}
program:
  phases:
    - kind: fireworks
      group: pop
`))
	require.NoError(t, err)
	s, err := c.Build()
	require.NoError(t, err)

	assert.Equal(t, []int{3}, s.Sign.Topo.Neighbors(0))
	assert.Equal(t, []int{0, 2}, s.Sign.Topo.Neighbors(1))
	assert.Equal(t, []render.Color{
		render.RGB(255, 0, 0), render.RGB(255, 0, 0),
		render.RGB(0, 0, 255), render.RGB(0, 0, 255),
	}, s.Sign.Letters.Image())
	assert.Equal(t, []string{"pop"}, s.Sign.GroupNames())
}

func TestConfigErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"driver":    "driver: hdmi",
		"speed":     "speed: -1",
		"channels":  "spi: {channels: 5}",
		"white":     "power: {white_cap: 2}",
		"flicker":   "letters: {flicker: -1}",
		"highlight": "rocket: {highlight: 300}",
		"yaml":      "driver: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	for name, mut := range map[string]func(c *Config){
		"rule color":   func(c *Config) { c.Sign.Rules[0].Color = "reddish" },
		"rocket color": func(c *Config) { c.Sign.Groups[0].Rockets[0].Color = "#12" },
		"travel":       func(c *Config) { c.Rocket.TravelBase = "nope" },
		"timing":       func(c *Config) { c.Rocket.AdvanceEvery = -5 },
		"group":        func(c *Config) { c.Program.Phases = []show.Phase{{Kind: show.Fireworks, Group: "gold"}} },
		"start":        func(c *Config) { c.Sign.StartNode = 99 },
	} {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mut(c)
			_, err := c.Build()
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" #F00502 ")
	require.NoError(t, err)
	assert.Equal(t, render.RGB(240, 5, 2), c)
	assert.Equal(t, "#f00502", hex(c))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
