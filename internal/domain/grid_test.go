package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampleGrid_ShapeAndFlattening(t *testing.T) {
	b, err := NewBounds(0, 10, 0, 10)
	require.NoError(t, err)

	g, err := NewSampleGrid(b, 100)
	require.NoError(t, err)

	assert.Equal(t, g.NX*g.NY, len(g.Points))
	assert.Len(t, g.RX, g.NX)
	assert.Len(t, g.RY, g.NY)

	for iy := 0; iy < g.NY; iy++ {
		for ix := 0; ix < g.NX; ix++ {
			flat := g.FlatIndex(ix, iy)
			gotX, gotY := g.Coords(flat)
			assert.Equal(t, ix, gotX)
			assert.Equal(t, iy, gotY)
			assert.Equal(t, g.RX[ix], g.Points[flat].X)
			assert.Equal(t, g.RY[iy], g.Points[flat].Y)
		}
	}
}

func TestNewSampleGrid_RejectsTooFewSamples(t *testing.T) {
	b, err := NewBounds(0, 10, 0, 10)
	require.NoError(t, err)

	_, err = NewSampleGrid(b, 3)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDegenerateBounds))
}
