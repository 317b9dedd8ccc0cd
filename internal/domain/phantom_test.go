package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhantomRegions_Quadrants(t *testing.T) {
	b, err := NewBounds(0, 10, 0, 10)
	require.NoError(t, err)

	regions := PhantomRegions(b)
	require.Len(t, regions, 4)

	for _, name := range PhantomRegionNames {
		obj, ok := regions[name]
		require.True(t, ok, "missing region %s", name)
		assert.False(t, obj.Movable)
		assert.True(t, IsPhantomRegion(name))
	}

	// bottom regions occupy the larger-y half, matching the screen-space
	// convention where y grows downward.
	assert.Greater(t, regions["bottom_left_corner"].Centroid().Y, regions["top_left_corner"].Centroid().Y)
	assert.Greater(t, regions["bottom_right_corner"].Centroid().Y, regions["top_right_corner"].Centroid().Y)
	assert.Less(t, regions["top_left_corner"].Centroid().X, regions["top_right_corner"].Centroid().X)
}

func TestIsPhantomRegion_False(t *testing.T) {
	assert.False(t, IsPhantomRegion("red_block"))
}
