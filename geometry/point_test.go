package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomesh/types"
)

func TestPoint(t *testing.T) {
	{
		p := NewPoint(1, 2)
		assert.Equal(t, 2, p.Dim())
		xy, err := p.As2D()
		require.NoError(t, err)
		assert.Equal(t, [2]float64{1, 2}, xy)

		_, err = p.As3D()
		assert.ErrorIs(t, err, types.ErrDimensionMismatch)
	}
	{
		p := NewPoint(1, 2, 3)
		xyz, err := p.As3D()
		require.NoError(t, err)
		assert.Equal(t, [3]float64{1, 2, 3}, xyz)

		assert.True(t, p.ApproxEqual(NewPoint(1, 2, 3+1.e-12), 1.e-10))
		assert.False(t, p.ApproxEqual(NewPoint(1, 2), 1.e-10))
	}
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox(2)
	bb.Expand(NewPoint(0, 0))
	bb.Expand(NewPoint(2, 1))
	assert.True(t, bb.Contains(NewPoint(1, 0.5)))
	assert.True(t, bb.Contains(NewPoint(2, 1)))
	assert.False(t, bb.Contains(NewPoint(2.1, 0.5)))
	assert.False(t, bb.Contains(NewPoint(1, 0.5, 0)))

	scaled := bb.Scale(2)
	assert.Equal(t, NewPoint(-1, -0.5), scaled.Min)
	assert.Equal(t, NewPoint(3, 1.5), scaled.Max)

	assert.Panics(t, func() { bb.Expand(NewPoint(0, 0, 0)) })
}
