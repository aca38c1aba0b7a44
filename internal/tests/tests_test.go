package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrudolph/twaeng-pop-sign/internal/driver/fake"
	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/sign"
	"github.com/jrudolph/twaeng-pop-sign/internal/timing"
)

func setup(t *testing.T) (*sign.Sign, *render.Engine, *fake.Recorder) {
	t.Helper()
	s, err := sign.New(sign.Default())
	require.NoError(t, err)
	rec := &fake.Recorder{}
	e, err := render.NewEngine(s.Topo.Len(), rec)
	require.NoError(t, err)
	e.Dim = rec
	return s, e, rec
}

func lit(frame []render.Color) []int {
	var out []int
	for i, c := range frame {
		if !c.IsBlack() {
			out = append(out, i)
		}
	}
	return out
}

func TestIndexSweepLightsOneNodeAtATime(t *testing.T) {
	s, e, rec := setup(t)
	r, err := NewRunner(Plan{Kind: IndexSweep}, s)
	require.NoError(t, err)

	var labels []string
	lim := timing.NewNoOp()
	require.NoError(t, r.Run(context.Background(), e, lim, func(l string) { labels = append(labels, l) }))

	require.Equal(t, 26, rec.Len())
	for i := 0; i < 25; i++ {
		assert.Equal(t, []int{i}, lit(rec.Frame(i)), "step %d", i)
	}
	assert.Empty(t, lit(rec.Frame(-1)))
	assert.Equal(t, "node 0", labels[0])
	assert.Equal(t, "node 24", labels[24])
	assert.Equal(t, 25, lim.Ticks)
	assert.Equal(t, 25*DefaultPause, lim.Paused)

	levels := rec.Levels()
	assert.Equal(t, 255, levels[0])
	assert.Equal(t, 0, levels[len(levels)-1])
}

func TestRGBTestStopsAfterThreeChannels(t *testing.T) {
	s, e, rec := setup(t)
	r, err := NewRunner(Plan{Kind: RGBTest}, s)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background(), e, timing.NewNoOp(), nil))

	require.Equal(t, 4, rec.Len())
	assert.Equal(t, render.RGB(255, 0, 0), rec.Frame(0)[7])
	assert.Equal(t, render.RGB(0, 255, 0), rec.Frame(1)[7])
	assert.Equal(t, render.RGB(0, 0, 255), rec.Frame(2)[7])
}

func TestGlyphSweepFollowsMasks(t *testing.T) {
	s, e, rec := setup(t)
	r, err := NewRunner(Plan{Kind: GlyphSweep}, s)
	require.NoError(t, err)

	var labels []string
	require.NoError(t, r.Run(context.Background(), e, timing.NewNoOp(), func(l string) { labels = append(labels, l) }))

	assert.Equal(t, []string{"excl", "o", "o_p2", "p1", "p2"}, labels)
	assert.Equal(t, []int{21, 22, 23, 24}, lit(rec.Frame(0)))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, lit(rec.Frame(1)))
	assert.Empty(t, lit(rec.Frame(2)))
}

func TestRunStopsOnCancel(t *testing.T) {
	s, e, rec := setup(t)
	r, err := NewRunner(Plan{Kind: IndexSweep}, s)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Run(ctx, e, timing.NewNoOp(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, rec.Len())
}

func TestUnknownPattern(t *testing.T) {
	s, _, _ := setup(t)
	_, err := NewRunner(Plan{Kind: "plane_z"}, s)
	assert.Error(t, err)
}
