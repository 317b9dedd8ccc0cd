package geometry

import (
	"math"
	"sort"
)

// Polygon is a convex polygon, vertices stored counter-clockwise.
type Polygon struct {
	Points []Point
}

// NewPolygon takes the convex hull of pts (monotone chain) and returns the
// resulting convex Polygon. Mirrors the original source's
// "Polygon(points, convex_hull=True)" construction from a raw point cloud.
func NewPolygon(pts []Point) Polygon {
	if len(pts) == 0 {
		return Polygon{}
	}
	uniq := dedupe(pts)
	if len(uniq) < 3 {
		return Polygon{Points: uniq}
	}

	sort.Slice(uniq, func(i, j int) bool {
		if uniq[i].X != uniq[j].X {
			return uniq[i].X < uniq[j].X
		}
		return uniq[i].Y < uniq[j].Y
	})

	n := len(uniq)
	hull := make([]Point, 0, 2*n)

	// lower hull
	for _, p := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper hull
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return Polygon{Points: hull[:len(hull)-1]}
}

func dedupe(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	seen := make(map[Point]bool, len(pts))
	for _, p := range pts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// RectangleAroundCenter builds a convex rectangle of the given width/height
// centered on c, matching the original source's rectangle_around_center.
func RectangleAroundCenter(c Point, width, height float64) Polygon {
	hw, hh := width/2, height/2
	return Polygon{Points: []Point{
		{c.X - hw, c.Y - hh},
		{c.X + hw, c.Y - hh},
		{c.X + hw, c.Y + hh},
		{c.X - hw, c.Y + hh},
	}}
}

// RegularPolygon approximates a circle of the given radius centered on c
// with an n-sided regular polygon, for objects described as circles.
func RegularPolygon(c Point, radius float64, n int) Polygon {
	if n < 3 {
		n = 12
	}
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{c.X + radius*math.Cos(theta), c.Y + radius*math.Sin(theta)}
	}
	return Polygon{Points: pts}
}

// Rect builds the axis-aligned rectangle with the given corners, used for
// the workspace bounds and the phantom regions.
func Rect(xMin, xMax, yMin, yMax float64) Polygon {
	return Polygon{Points: []Point{
		{xMin, yMin},
		{xMax, yMin},
		{xMax, yMax},
		{xMin, yMax},
	}}
}

// Clone returns a deep copy of p.
func (p Polygon) Clone() Polygon {
	cp := make([]Point, len(p.Points))
	copy(cp, p.Points)
	return Polygon{Points: cp}
}

// Translate returns a new polygon with every vertex shifted by (dx, dy).
// It never mutates p.
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = Point{pt.X + dx, pt.Y + dy}
	}
	return Polygon{Points: out}
}

// Centroid returns the area-weighted centroid of p, falling back to the
// arithmetic mean of vertices for degenerate (fewer than 3 point) polygons.
func (p Polygon) Centroid() Point {
	n := len(p.Points)
	if n == 0 {
		return Point{}
	}
	if n < 3 {
		var sx, sy float64
		for _, pt := range p.Points {
			sx += pt.X
			sy += pt.Y
		}
		return Point{sx / float64(n), sy / float64(n)}
	}

	var area, cx, cy float64
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cr := a.X*b.Y - b.X*a.Y
		area += cr
		cx += (a.X + b.X) * cr
		cy += (a.Y + b.Y) * cr
	}
	area /= 2
	if area == 0 {
		var sx, sy float64
		for _, pt := range p.Points {
			sx += pt.X
			sy += pt.Y
		}
		return Point{sx / float64(n), sy / float64(n)}
	}
	return Point{cx / (6 * area), cy / (6 * area)}
}

// ContainsPoint reports whether q lies inside (or on the boundary of) the
// convex polygon p, via the standard half-plane test.
func (p Polygon) ContainsPoint(q Point) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cr := cross(a, b, q)
		if cr == 0 {
			continue
		}
		s := 1
		if cr < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if sign != s {
			return false
		}
	}
	return true
}

// Overlaps reports whether two convex polygons intersect, using the
// separating axis theorem.
func (p Polygon) Overlaps(o Polygon) bool {
	if len(p.Points) == 0 || len(o.Points) == 0 {
		return false
	}
	if len(p.Points) < 3 || len(o.Points) < 3 {
		// Degenerate shapes: fall back to containment checks between points.
		for _, pt := range p.Points {
			if o.ContainsPoint(pt) {
				return true
			}
		}
		for _, pt := range o.Points {
			if p.ContainsPoint(pt) {
				return true
			}
		}
		return false
	}
	return !p.hasSeparatingAxis(o) && !o.hasSeparatingAxis(p)
}

func (p Polygon) hasSeparatingAxis(o Polygon) bool {
	n := len(p.Points)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		// Left normal of edge a->b (inward for a counter-clockwise polygon;
		// the projection test does not depend on its direction).
		axisX, axisY := -(b.Y - a.Y), b.X - a.X

		minP, maxP := project(p, axisX, axisY)
		minO, maxO := project(o, axisX, axisY)

		if maxP < minO || maxO < minP {
			return true
		}
	}
	return false
}

func project(p Polygon, axisX, axisY float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		d := pt.X*axisX + pt.Y*axisY
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return
}

// Distance returns the minimum Euclidean distance between the boundaries of
// p and o, or 0 if they overlap.
func (p Polygon) Distance(o Polygon) float64 {
	if p.Overlaps(o) {
		return 0
	}
	min := math.Inf(1)
	for i := 0; i < len(p.Points); i++ {
		a1 := p.Points[i]
		a2 := p.Points[(i+1)%len(p.Points)]
		for j := 0; j < len(o.Points); j++ {
			b1 := o.Points[j]
			b2 := o.Points[(j+1)%len(o.Points)]
			d := segmentDistance(a1, a2, b1, b2)
			if d < min {
				min = d
			}
		}
	}
	if len(p.Points) == 0 || len(o.Points) == 0 {
		return p.Centroid().Dist(o.Centroid())
	}
	return min
}

func segmentDistance(a1, a2, b1, b2 Point) float64 {
	d1 := pointSegmentDistance(a1, b1, b2)
	d2 := pointSegmentDistance(a2, b1, b2)
	d3 := pointSegmentDistance(b1, a1, a2)
	d4 := pointSegmentDistance(b2, a1, a2)
	return math.Min(math.Min(d1, d2), math.Min(d3, d4))
}

func pointSegmentDistance(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{a.X + t*abx, a.Y + t*aby}
	return p.Dist(proj)
}
