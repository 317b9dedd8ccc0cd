package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spatialreq/internal/geometry"
)

func TestObject_CentroidAndRegisterObservation(t *testing.T) {
	shape := geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 2, 2)
	obj := NewObject("red_block", shape, "red", true)

	assert.InDelta(t, 0, obj.Centroid().X, 1e-9)
	assert.InDelta(t, 0, obj.Centroid().Y, 1e-9)

	moved := geometry.RectangleAroundCenter(geometry.Point{X: 3, Y: 4}, 2, 2)
	obj.RegisterObservation(moved)

	assert.InDelta(t, 3, obj.Centroid().X, 1e-9)
	assert.InDelta(t, 4, obj.Centroid().Y, 1e-9)
}

func TestObject_DisplacedDoesNotMutate(t *testing.T) {
	shape := geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 2, 2)
	obj := NewObject("blue_block", shape, "blue", true)

	virtual := obj.Displaced(geometry.Point{X: 5, Y: 5})

	assert.InDelta(t, 5, virtual.Centroid().X, 1e-9)
	assert.InDelta(t, 0, obj.Centroid().X, 1e-9, "original object must not move")
}
