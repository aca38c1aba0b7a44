package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

func TestDuty(t *testing.T) {
	assert.Equal(t, gpio.Duty(0), Duty(0))
	assert.Equal(t, gpio.Duty(0), Duty(-4))
	assert.Equal(t, Duty(MaxLevel), Duty(1000))
	assert.True(t, Duty(MaxLevel).Valid())
	assert.Less(t, Duty(80), Duty(150))
	// 80² of 65535
	assert.Equal(t, gpio.Duty(int64(6400)*int64(gpio.DutyMax)/0xFFFF), Duty(80))
}

func TestBacklightSetsPWM(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO22", Num: 22}
	b := NewBacklight(pin, 0)

	assert.NoError(t, b.SetLevel(150))
	pin.Lock()
	assert.Equal(t, Duty(150), pin.D)
	assert.Equal(t, 1000*physic.Hertz, pin.F)
	pin.D = 0
	pin.Unlock()

	// unchanged level is not resent
	assert.NoError(t, b.SetLevel(150))
	pin.Lock()
	assert.Equal(t, gpio.Duty(0), pin.D)
	pin.Unlock()

	pin.L = gpio.High
	assert.NoError(t, b.Close())
	assert.Equal(t, gpio.Low, pin.L)
}
