package spatialeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialreq/internal/geometry"
	"spatialreq/internal/spatialast"
)

func TestExprEvaluator_LeftOf(t *testing.T) {
	e := NewExprEvaluator()
	e.AssignVariable("a", geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 1, 1))
	e.AssignVariable("b", geometry.RectangleAroundCenter(geometry.Point{X: 5, Y: 0}, 1, 1))

	node := spatialast.LeftOf("a", "b")
	v, err := e.Interpret(node)
	require.NoError(t, err)
	assert.Greater(t, v, 0.0)

	flipped := spatialast.LeftOf("b", "a")
	v2, err := e.Interpret(flipped)
	require.NoError(t, err)
	assert.Less(t, v2, 0.0)
}

func TestExprEvaluator_DistThreshold(t *testing.T) {
	e := NewExprEvaluator()
	e.AssignVariable("a", geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 1, 1))
	e.AssignVariable("b", geometry.RectangleAroundCenter(geometry.Point{X: 3, Y: 0}, 1, 1))

	within, err := e.Interpret(spatialast.DistLE("a", "b", 5))
	require.NoError(t, err)
	assert.Greater(t, within, 0.0)

	tooFar, err := e.Interpret(spatialast.DistLE("a", "b", 1))
	require.NoError(t, err)
	assert.Less(t, tooFar, 0.0)
}

func TestExprEvaluator_AndCombinesWithMin(t *testing.T) {
	e := NewExprEvaluator()
	e.AssignVariable("a", geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 1, 1))
	e.AssignVariable("b", geometry.RectangleAroundCenter(geometry.Point{X: 5, Y: 0}, 1, 1))

	conj := spatialast.And(spatialast.LeftOf("a", "b"), spatialast.DistLE("a", "b", 1))
	v, err := e.Interpret(conj)
	require.NoError(t, err)
	assert.Less(t, v, 0.0, "the dist<=1 clause fails and dominates the conjunction")
}

func TestExprEvaluator_ResetSpatialDictClearsVariables(t *testing.T) {
	e := NewExprEvaluator()
	e.AssignVariable("a", geometry.RectangleAroundCenter(geometry.Point{X: 0, Y: 0}, 1, 1))
	e.ResetSpatialDict()

	_, err := e.Interpret(spatialast.LeftOf("a", "b"))
	assert.Error(t, err)
}

func TestExprEvaluator_ProgramIsCachedPerPredicateKind(t *testing.T) {
	e := NewExprEvaluator()
	_, err := e.getCompiledProgram(spatialast.PredLeftOf)
	require.NoError(t, err)
	p1 := e.cache[spatialast.PredLeftOf]

	_, err = e.getCompiledProgram(spatialast.PredLeftOf)
	require.NoError(t, err)
	p2 := e.cache[spatialast.PredLeftOf]

	assert.Same(t, p1, p2)
}
