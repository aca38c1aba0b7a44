package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskOf(t *testing.T) {
	m, err := MaskOf(6, 1, 3, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Count())
	assert.Equal(t, []int{1, 3, 5}, m.Nodes())
	assert.True(t, m.Has(3))
	assert.False(t, m.Has(2))
	assert.False(t, m.Has(6))

	o, err := MaskOf(6, 0, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, m.And(o).Nodes())

	_, err = MaskOf(6, 6)
	assert.ErrorIs(t, err, ErrInvalid)
}
