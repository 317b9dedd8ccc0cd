package domain

import "spatialreq/internal/geometry"

// Object is the Scene Model's unit, per spec.md §3: an identity (its unique
// name), a convex polygon footprint, a cached centroid, a display color and
// a movability flag. It is created at planner initialization and mutated
// only by RegisterObservation.
type Object struct {
	Name     string
	Shape    geometry.Polygon
	Color    string
	Movable  bool
	centroid geometry.Point
}

// NewObject constructs an Object from its initial observed shape.
func NewObject(name string, shape geometry.Polygon, color string, movable bool) *Object {
	return &Object{
		Name:     name,
		Shape:    shape,
		Color:    color,
		Movable:  movable,
		centroid: shape.Centroid(),
	}
}

// Centroid returns the cached centroid of the object's current shape.
func (o *Object) Centroid() geometry.Point {
	return o.centroid
}

// RegisterObservation replaces the object's polygon and recomputes its
// cached centroid. This is the only mutation path for an Object, per
// spec.md §3's lifecycle.
func (o *Object) RegisterObservation(shape geometry.Polygon) {
	o.Shape = shape
	o.centroid = shape.Centroid()
}

// Displaced returns a deep copy of the object's shape translated so its
// centroid lands on pos, without mutating the object. Used by the
// Gradient-Map Engine to evaluate virtual placements.
func (o *Object) Displaced(pos geometry.Point) geometry.Polygon {
	d := pos.Sub(o.centroid)
	return o.Shape.Clone().Translate(d.X, d.Y)
}
