package domain

import (
	"fmt"
	"math"

	"spatialreq/internal/geometry"
)

// SampleGrid is the Workspace Grid Sampler's output, per spec.md §3: two 1D
// coordinate arrays plus the flattened nx*ny sample points in row-major
// (y,x) order.
type SampleGrid struct {
	RX, RY []float64
	Points []geometry.Point
	NX, NY int
}

// NewSampleGrid places roughly `samples` points inside bounds, choosing
// nx/ny so nx*ny is close to samples while matching the bounds' aspect
// ratio. Returns ErrCodeDegenerateBounds if samples<4.
func NewSampleGrid(b Bounds, samples int) (*SampleGrid, error) {
	if samples < 4 {
		return nil, NewPlannerError(
			ErrCodeDegenerateBounds,
			fmt.Sprintf("samples must be >= 4, got %d", samples),
			nil,
		)
	}

	ratio := b.Width() / b.Height()
	nx := int(math.Sqrt(float64(samples) * ratio))
	if nx < 1 {
		nx = 1
	}
	ny := samples / nx
	if ny < 1 {
		ny = 1
	}

	rx := linspace(b.XMin, b.XMax, nx)
	ry := linspace(b.YMin, b.YMax, ny)

	points := make([]geometry.Point, 0, nx*ny)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			points = append(points, geometry.Point{X: rx[ix], Y: ry[iy]})
		}
	}

	return &SampleGrid{RX: rx, RY: ry, Points: points, NX: nx, NY: ny}, nil
}

// FlatIndex returns the row-major flat index for grid cell (ix, iy).
func (g *SampleGrid) FlatIndex(ix, iy int) int {
	return iy*g.NX + ix
}

// Coords returns the (ix, iy) grid cell for a flat index.
func (g *SampleGrid) Coords(flat int) (ix, iy int) {
	return flat % g.NX, flat / g.NX
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = lo + step*float64(i)
	}
	return out
}
