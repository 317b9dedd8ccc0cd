// Package geometry implements the Geometry contract of spec.md §6: convex
// polygons over named objects, with centroid, translation, deep-clone and
// the predicates (containment, overlap, distance) the Spatial Evaluator
// needs. This is explicitly an external/out-of-core contract; the
// implementation here is a reference one, built on the standard library
// since the retrieval pack carries no 2D planar-geometry library (the one
// geometry dependency present, golang/geo, targets spherical/S2 coordinates
// and does not fit a planar workspace).
package geometry

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
