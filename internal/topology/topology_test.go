package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearFallback(t *testing.T) {
	topo, err := New(5, Table{2: {0, 4}})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, topo.Neighbors(0))
	assert.Equal(t, []int{0, 2}, topo.Neighbors(1))
	assert.Equal(t, []int{0, 4}, topo.Neighbors(2))
	assert.Equal(t, []int{3}, topo.Neighbors(4))
	assert.Nil(t, topo.Neighbors(5))
	assert.Nil(t, topo.Neighbors(-1))
}

func TestSingleNodeHasNoNeighbors(t *testing.T) {
	topo, err := Linear(1)
	require.NoError(t, err)
	assert.Empty(t, topo.Neighbors(0))
}

func TestConstructionErrors(t *testing.T) {
	cases := map[string]struct {
		n     int
		table Table
	}{
		"no leds":           {0, nil},
		"key out of range":  {3, Table{3: {1}}},
		"negative neighbor": {3, Table{1: {-1}}},
		"neighbor too big":  {3, Table{1: {3}}},
		"self loop":         {3, Table{1: {0, 1}}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(c.n, c.table)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestTableIsCopied(t *testing.T) {
	tbl := Table{1: {0, 2}}
	topo, err := New(3, tbl)
	require.NoError(t, err)
	tbl[1][0] = 2
	assert.Equal(t, []int{0, 2}, topo.Neighbors(1))
}

func TestNeighborsAlwaysValid(t *testing.T) {
	topo, err := New(6, Table{0: {5, 3}, 3: {0, 1, 2, 4}})
	require.NoError(t, err)
	for n := 0; n < topo.Len(); n++ {
		for _, nb := range topo.Neighbors(n) {
			assert.True(t, topo.Valid(nb), "node %d neighbor %d", n, nb)
			assert.NotEqual(t, n, nb)
		}
	}
}
