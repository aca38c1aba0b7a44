package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
)

func TestPaletteStages(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, render.RGB(28, 70, 6), p.Color(20, 0, 0))
	assert.Equal(t, render.RGB(100, 40, 0), p.Color(20, 0, 2))
	assert.Equal(t, render.RGB(70, 140, 20), p.Color(10, 0, 0))
	assert.Equal(t, render.RGB(150, 60, 10), p.Color(8, 0, 1))
	assert.Equal(t, render.RGB(40, 20, 200), p.Color(5, 3499, 0))
	assert.Equal(t, render.RGB(255, 130, 80), p.Color(5, 3499, 3))
	assert.Equal(t, render.RGB(0, 255, 0), p.Color(4, 4000, 0))
	assert.Equal(t, render.RGB(255, 0, 255), p.Color(4, 9999, 1))
}

func TestPaletteBlendWindow(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, render.RGB(255, 130, 80), p.Color(4, 3500, 0))
	assert.Equal(t, render.RGB(128, 192, 40), p.Color(4, 3750, 0))
	assert.Equal(t, render.RGB(147, 10, 227), p.Color(4, 3750, 1))
}

func TestInterpClampsBothBounds(t *testing.T) {
	assert.Equal(t, 10, Interp(0, 10, 0, 10, 50))
	assert.Equal(t, 0, Interp(0, 10, 0, 10, -50))
	assert.Equal(t, 5, Interp(0, 10, 0, 10, 5))
	assert.Equal(t, 128, Interp(3500, 4000, 255, 0, 3750))
	assert.Equal(t, 7, Interp(3, 3, 1, 7, 3))
}
