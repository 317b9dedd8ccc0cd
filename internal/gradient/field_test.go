package gradient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialreq/internal/automaton"
	"spatialreq/internal/domain"
	"spatialreq/internal/geometry"
	"spatialreq/internal/spatialast"
	"spatialreq/internal/spatialeval"
)

func TestGradientMap_PurityInvariant(t *testing.T) {
	b, err := domain.NewBounds(0, 10, 0, 10)
	require.NoError(t, err)
	grid, err := domain.NewSampleGrid(b, 16)
	require.NoError(t, err)

	blue := domain.NewObject("blue", geometry.RectangleAroundCenter(geometry.Point{X: 1, Y: 1}, 1, 1), "blue", true)
	red := domain.NewObject("red", geometry.RectangleAroundCenter(geometry.Point{X: 8, Y: 8}, 1, 1), "red", false)

	ev := spatialeval.NewExprEvaluator()
	ev.AssignVariable("blue", blue.Shape)
	ev.AssignVariable("red", red.Shape)

	subtree := spatialast.LeftOf("blue", "red")
	before := blue.Shape

	field, err := GradientMap(blue, grid, ev, subtree)
	require.NoError(t, err)
	assert.Len(t, field, len(grid.Points))
	assert.Equal(t, before, blue.Shape, "GradientMap must restore the object's real shape")
}

func TestFindBestPoint_ReturnsFalseWhenNothingQualifies(t *testing.T) {
	field := Field{-1, -2, math.NaN(), -0.5}
	grid := &domain.SampleGrid{Points: []geometry.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, NX: 4, NY: 1}

	_, ok := FindBestPoint(field, 0, grid)
	assert.False(t, ok)
}

func TestFindBestPoint_PicksMedianOfMaxima(t *testing.T) {
	field := Field{1, 5, 5, 2, 5}
	grid := &domain.SampleGrid{
		Points: []geometry.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
		NX:     5, NY: 1,
	}

	p, ok := FindBestPoint(field, 0, grid)
	require.True(t, ok)
	// maxima at indices 1,2,4; median (lower-middle) is index 2 -> point {2,0}
	assert.Equal(t, geometry.Point{X: 2, Y: 0}, p)
}

func TestMaskForbidden(t *testing.T) {
	field := Field{1, 2, 3}
	constraint := Field{-1, 1, math.NaN()}
	masked := MaskForbidden(field, constraint)

	assert.Equal(t, 1.0, masked[0])
	assert.True(t, math.IsNaN(masked[1]))
	assert.Equal(t, 3.0, masked[2])
}

func TestFieldFromGuard_ConjunctionAndNegation(t *testing.T) {
	b, err := domain.NewBounds(0, 10, 0, 10)
	require.NoError(t, err)
	grid, err := domain.NewSampleGrid(b, 16)
	require.NoError(t, err)

	blue := domain.NewObject("blue", geometry.RectangleAroundCenter(geometry.Point{X: 1, Y: 1}, 1, 1), "blue", true)
	red := domain.NewObject("red", geometry.RectangleAroundCenter(geometry.Point{X: 8, Y: 8}, 1, 1), "red", false)

	ev := spatialeval.NewExprEvaluator()
	ev.AssignVariable("blue", blue.Shape)
	ev.AssignVariable("red", red.Shape)

	dfaAP := []string{"p0"}
	apToTree := map[string]*spatialast.Node{"p0": spatialast.LeftOf("blue", "red")}

	guardZero := automaton.Guard{automaton.Zero}
	field, err := FieldFromGuard(blue, guardZero, grid, ev, dfaAP, apToTree)
	require.NoError(t, err)

	// negated leftof: should be positive where blue is to the right of red.
	found := false
	for i, p := range grid.Points {
		if p.X > red.Centroid().X {
			assert.Greater(t, field[i], 0.0)
			found = true
		}
	}
	assert.True(t, found)
}
