package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver captures the last frame written.
type fakeDriver struct {
	last   []Color
	writes int
	err    error
}

func (d *fakeDriver) Write(buf []Color) error {
	d.last = make([]Color, len(buf))
	copy(d.last, buf)
	d.writes++
	return d.err
}

type fakeDimmer struct{ levels []int }

func (d *fakeDimmer) SetLevel(level int) error {
	d.levels = append(d.levels, level)
	return nil
}

func TestCompositeAveragesChannels(t *testing.T) {
	a := []Color{{R: 200, G: 0, B: 11}}
	b := []Color{{R: 100, G: 1, B: 10}}
	dst := make([]Color, 1)
	Composite(dst, a, b)
	assert.Equal(t, Color{R: 150, G: 0, B: 10}, dst[0])
}

func TestCompositeCommutativeAndIdempotent(t *testing.T) {
	a := []Color{{255, 3, 7}, {0, 0, 0}, {17, 200, 99}}
	b := []Color{{1, 1, 1}, {254, 255, 253}, {18, 201, 98}}
	ab := make([]Color, 3)
	ba := make([]Color, 3)
	Composite(ab, a, b)
	Composite(ba, b, a)
	assert.Equal(t, ab, ba)

	again := make([]Color, 3)
	Composite(again, a, b)
	assert.Equal(t, ab, again)
}

func TestEngineCommitUsesBackground(t *testing.T) {
	drv := &fakeDriver{}
	e, err := NewEngine(2, drv)
	require.NoError(t, err)

	e.Frame.Set(0, RGB(100, 50, 0))
	require.NoError(t, e.Commit())
	assert.Equal(t, []Color{{100, 50, 0}, {}}, drv.last, "no background: frame goes out untouched")

	e.SetBackground([]Color{RGB(20, 10, 2), RGB(1, 1, 1)})
	require.NoError(t, e.Commit())
	assert.Equal(t, []Color{{60, 30, 1}, {0, 0, 0}}, drv.last)
	assert.Equal(t, RGB(100, 50, 0), e.Frame.At(0), "frame is never modified by compositing")

	e.ClearBackground()
	require.NoError(t, e.Commit())
	assert.Equal(t, RGB(100, 50, 0), drv.last[0])
	assert.EqualValues(t, 3, e.Frames)
}

func TestEngineShowPadsWithBlack(t *testing.T) {
	drv := &fakeDriver{}
	e, err := NewEngine(3, drv)
	require.NoError(t, err)
	require.NoError(t, e.Show([]Color{RGB(9, 9, 9)}))
	assert.Equal(t, []Color{{9, 9, 9}, {}, {}}, drv.last)
}

func TestEngineDecayIncludesBacklight(t *testing.T) {
	dim := &fakeDimmer{}
	e, err := NewEngine(1, nil)
	require.NoError(t, err)
	e.Dim = dim
	e.SetBacklight(150)
	e.Frame.Set(0, RGB(255, 16, 1))
	e.Decay()
	assert.Equal(t, RGB(223, 14, 0), e.Frame.At(0))
	assert.Equal(t, 131, e.Backlight())
	require.NoError(t, e.Commit())
	assert.Equal(t, []int{131}, dim.levels)
}

func TestEngineReportsDriverError(t *testing.T) {
	boom := errors.New("boom")
	e, err := NewEngine(1, &fakeDriver{err: boom})
	require.NoError(t, err)
	assert.ErrorIs(t, e.Commit(), boom)
}

func TestNewEngineRejectsEmpty(t *testing.T) {
	_, err := NewEngine(0, nil)
	assert.Error(t, err)
}

func TestMultiWritesAll(t *testing.T) {
	a, b := &fakeDriver{err: errors.New("a")}, &fakeDriver{}
	err := Multi{a, nil, b}.Write([]Color{RGB(1, 2, 3)})
	assert.Error(t, err)
	assert.Equal(t, 1, a.writes)
	assert.Equal(t, 1, b.writes)
}

func TestDimmersSetsAll(t *testing.T) {
	a, b := &fakeDimmer{}, &fakeDimmer{}
	require.NoError(t, Dimmers{a, nil, b}.SetLevel(40))
	assert.Equal(t, []int{40}, a.levels)
	assert.Equal(t, []int{40}, b.levels)
}
