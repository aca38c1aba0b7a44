package walker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrudolph/twaeng-pop-sign/internal/render"
	"github.com/jrudolph/twaeng-pop-sign/internal/topology"
)

func testTopology(t *testing.T) *topology.Topology {
	t.Helper()
	// a small ring with a spur: 0-1-2-3-0, 2-4, 4-5 (5 is a dead end)
	topo, err := topology.New(6, topology.Table{
		0: {1, 3},
		1: {0, 2},
		2: {1, 3, 4},
		3: {2, 0},
		4: {2, 5},
		5: {4},
	})
	require.NoError(t, err)
	return topo
}

func TestNextPosSingleNeighborIgnoresExclusion(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 4, NextPos(topo, 5, [2]int{4, None}, rng))
}

func TestNextPosFallsBackToFirstNeighbor(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 1, NextPos(topo, 0, [2]int{1, 3}, rng))
}

func TestNextPosIsolatedNodeStays(t *testing.T) {
	topo, err := topology.Linear(1)
	require.NoError(t, err)
	assert.Equal(t, 0, NextPos(topo, 0, [2]int{None, None}, rand.New(rand.NewSource(3))))
}

func TestNextPosNeverSelfLoops(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		at := rng.Intn(topo.Len())
		ex := [2]int{rng.Intn(topo.Len()), rng.Intn(topo.Len())}
		next := NextPos(topo, at, ex, rng)
		require.NotEqual(t, at, next)
		require.Contains(t, topo.Neighbors(at), next)
	}
}

func TestNextPosAvoidsLastVisited(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(7))
	const trials = 20000
	backtracks := 0
	for i := 0; i < trials; i++ {
		// node 2 has neighbors 1,3,4; coming from 1 there are two alternatives
		if NextPos(topo, 2, [2]int{1, None}, rng) == 1 {
			backtracks++
		}
	}
	// (1/3)^10 per call
	assert.LessOrEqual(t, backtracks, 2)

	backtracks = 0
	for i := 0; i < trials; i++ {
		// node 1 has two neighbors; one alternative
		if NextPos(topo, 1, [2]int{0, None}, rng) == 0 {
			backtracks++
		}
	}
	// (1/2)^10 per call, and the fallback is node 0 itself: expect about 20
	assert.Less(t, backtracks, trials/100)
}

func TestSpeedScheduleIsMonotoneAndFloored(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(9))
	sched := DefaultSchedule()
	st := NewState(0, sched.StartSpeed)
	prev := st.Speed
	for tick := 0; tick < 4800; tick++ {
		st = Advance(st, topo, sched, tick, rng)
		require.LessOrEqual(t, st.Speed, prev)
		require.GreaterOrEqual(t, st.Speed, sched.MinSpeed)
		prev = st.Speed
	}
	assert.Equal(t, sched.MinSpeed, st.Speed)
}

func TestAdvanceHopsOnlyOnSpeedTicks(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(5))
	sched := Schedule{StartSpeed: 10, MinSpeed: 10, SpeedupEvery: 1000, DecayEvery: 6}
	st := NewState(0, 10)

	st = Advance(st, topo, sched, 3, rng)
	assert.Equal(t, 0, st.Pos)
	assert.Equal(t, [3]int{None, None, None}, st.Trail)

	st = Advance(st, topo, sched, 10, rng)
	assert.NotEqual(t, 0, st.Pos)
	assert.Equal(t, [3]int{0, None, None}, st.Trail)

	first := st.Pos
	st = Advance(st, topo, sched, 20, rng)
	assert.Equal(t, [3]int{first, 0, None}, st.Trail)
}

func TestWalkerTickPaintsTrailAndDecays(t *testing.T) {
	topo := testTopology(t)
	e, err := render.NewEngine(topo.Len(), nil)
	require.NoError(t, err)
	w, err := New(topo, DefaultSchedule(), DefaultPalette(), 2, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	for tick := 0; tick < 600; tick++ {
		w.Tick(tick, e)
	}
	st := w.State()
	pal := DefaultPalette()
	assert.Equal(t, pal.Color(st.Speed, 599, 0), e.Frame.At(st.Pos))
	for _, n := range st.Trail {
		if n == None || n == st.Pos {
			continue
		}
		assert.Equal(t, pal.Color(st.Speed, 599, 1), e.Frame.At(n))
	}

	w.Reset()
	assert.Equal(t, NewState(2, 60), w.State())
}

func TestNewRejectsBadConfig(t *testing.T) {
	topo := testTopology(t)
	rng := rand.New(rand.NewSource(1))
	_, err := New(topo, DefaultSchedule(), DefaultPalette(), 6, rng)
	assert.Error(t, err)
	_, err = New(topo, Schedule{}, DefaultPalette(), 0, rng)
	assert.Error(t, err)
	_, err = New(topo, DefaultSchedule(), DefaultPalette(), 0, nil)
	assert.Error(t, err)
}
