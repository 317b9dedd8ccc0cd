package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialreq/internal/domain"
	"spatialreq/internal/geometry"
)

func TestScene_IncludesPhantomRegions(t *testing.T) {
	b, err := domain.NewBounds(0, 10, 0, 10)
	require.NoError(t, err)

	s := New(map[string]*domain.Object{
		"blue": domain.NewObject("blue", geometry.RectangleAroundCenter(geometry.Point{X: 1, Y: 1}, 1, 1), "blue", true),
	}, b)

	_, ok := s.Object("top_left_corner")
	assert.True(t, ok)
	_, ok = s.Object("blue")
	assert.True(t, ok)
}

func TestScene_RegisterObservation_IgnoresUnknown(t *testing.T) {
	b, err := domain.NewBounds(0, 10, 0, 10)
	require.NoError(t, err)

	s := New(map[string]*domain.Object{
		"blue": domain.NewObject("blue", geometry.RectangleAroundCenter(geometry.Point{X: 1, Y: 1}, 1, 1), "blue", true),
	}, b)

	ignored := s.RegisterObservation(map[string]geometry.Polygon{
		"blue":    geometry.RectangleAroundCenter(geometry.Point{X: 5, Y: 5}, 1, 1),
		"unknown": geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 1, 1),
	})

	assert.Equal(t, []string{"unknown"}, ignored)
	obj, _ := s.Object("blue")
	assert.InDelta(t, 5, obj.Centroid().X, 1e-9)
}

func TestScene_MovableNamesExcludesPhantoms(t *testing.T) {
	b, err := domain.NewBounds(0, 10, 0, 10)
	require.NoError(t, err)

	s := New(map[string]*domain.Object{
		"blue": domain.NewObject("blue", geometry.RectangleAroundCenter(geometry.Point{X: 1, Y: 1}, 1, 1), "blue", true),
		"red":  domain.NewObject("red", geometry.RectangleAroundCenter(geometry.Point{X: 2, Y: 2}, 1, 1), "red", false),
	}, b)

	assert.Equal(t, []string{"blue"}, s.MovableNames())
}
