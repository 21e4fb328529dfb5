package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridShape(t *testing.T) {
	g := New(3, 4)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	require.NoError(t, g.Validate())

	ragged := Grid{{1, 2}, {3}}
	err := ragged.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSameShape(t *testing.T) {
	require.NoError(t, SameShape())
	require.NoError(t, SameShape(New(2, 2), Uniform(2, 2, 1)))

	err := SameShape(New(2, 2), New(2, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestUniform(t *testing.T) {
	g := Uniform(2, 2, 0.4)
	for i := range g {
		for j := range g[i] {
			assert.Equal(t, 0.4, g[i][j])
		}
	}
}

func TestNoData(t *testing.T) {
	assert.True(t, IsNoData(NoData))
	assert.False(t, IsNoData(0))
	assert.False(t, IsNoData(-1e300))
}

func TestMask(t *testing.T) {
	m := NewMask(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	for i := range m {
		for j := range m[i] {
			assert.False(t, m[i][j])
		}
	}

	full := FullMask(2, 3)
	for i := range full {
		for j := range full[i] {
			assert.True(t, full[i][j])
		}
	}

	require.NoError(t, full.Matches(New(2, 3)))
	err := full.Matches(New(3, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
