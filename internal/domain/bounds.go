package domain

import "fmt"

// Bounds is the immutable rectangular workspace of spec.md §3.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// NewBounds validates and constructs workspace bounds. Returns
// ErrCodeDegenerateBounds if x_max<=x_min or y_max<=y_min.
func NewBounds(xMin, xMax, yMin, yMax float64) (Bounds, error) {
	if xMax <= xMin || yMax <= yMin {
		return Bounds{}, NewPlannerError(
			ErrCodeDegenerateBounds,
			fmt.Sprintf("workspace bounds must satisfy x_max>x_min and y_max>y_min, got (%v,%v,%v,%v)", xMin, xMax, yMin, yMax),
			nil,
		)
	}
	return Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}, nil
}

// Width returns x_max-x_min.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns y_max-y_min.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// MidX returns the horizontal midpoint.
func (b Bounds) MidX() float64 { return b.XMin + b.Width()*0.5 }

// MidY returns the vertical midpoint.
func (b Bounds) MidY() float64 { return b.YMin + b.Height()*0.5 }
