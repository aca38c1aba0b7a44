package led

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// MaxLevel is the highest backlight level; level² spans the 16 bit PWM range.
const MaxLevel = 255

// Backlight drives the sign's backlight LEDs from a PWM pin. It implements
// render.Dimmer.
type Backlight struct {
	pin  gpio.PinOut
	freq physic.Frequency
	last int
}

// NewBacklight wraps a PWM capable pin.
func NewBacklight(pin gpio.PinOut, freqHz int) *Backlight {
	if freqHz <= 0 {
		freqHz = 1000
	}
	return &Backlight{pin: pin, freq: physic.Frequency(freqHz) * physic.Hertz, last: -1}
}

// OpenBacklight looks the pin up by name (e.g. "GPIO22").
func OpenBacklight(name string, freqHz int) (*Backlight, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("led: no gpio pin %q", name)
	}
	return NewBacklight(p, freqHz), nil
}

// Duty squares the level so brightness appears linear.
func Duty(level int) gpio.Duty {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return gpio.Duty(int64(level*level) * int64(gpio.DutyMax) / 0xFFFF)
}

// SetLevel updates the PWM duty when the level changed.
func (b *Backlight) SetLevel(level int) error {
	if level == b.last {
		return nil
	}
	if err := b.pin.PWM(Duty(level), b.freq); err != nil {
		return fmt.Errorf("led: backlight %s: %w", b.pin, err)
	}
	b.last = level
	return nil
}

// Close switches the backlight off.
func (b *Backlight) Close() error {
	b.last = -1
	return b.pin.Out(gpio.Low)
}
