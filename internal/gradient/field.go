// Package gradient implements the Gradient-Map Engine and Guard-to-Field
// Compiler of spec.md §4.3/§4.4: sampled satisfaction fields over a
// workspace grid for a virtually-translated object, and their combination
// under a guard (conjunction) or a set of guards (disjunction).
package gradient

import (
	"math"

	"spatialreq/internal/automaton"
	"spatialreq/internal/domain"
	"spatialreq/internal/geometry"
	"spatialreq/internal/spatialast"
	"spatialreq/internal/spatialeval"
)

// Field is a sampled scalar field over a SampleGrid's flattened points,
// one value per grid point (possibly NaN, meaning "undefined").
type Field []float64

// GradientMap sweeps obj's centroid across every sample point of grid,
// interpreting subtree at each position with obj virtually translated
// there, and restores obj's real position before returning (even on
// error), satisfying spec.md §4.3's purity invariant.
func GradientMap(obj *domain.Object, grid *domain.SampleGrid, ev spatialeval.Evaluator, subtree *spatialast.Node) (Field, error) {
	original := obj.Shape
	field := make(Field, len(grid.Points))

	for i, p := range grid.Points {
		ev.AssignVariable(obj.Name, obj.Displaced(p))
		v, err := ev.Interpret(subtree)
		if err != nil {
			ev.AssignVariable(obj.Name, original)
			return nil, err
		}
		field[i] = v
	}

	ev.AssignVariable(obj.Name, original)
	return field, nil
}

// FieldFromGuard implements field_from_guard (§4.4): the pointwise
// conjunction (min-fold), over every non-DontCare position of g, of the
// gradient map for apToTree[dfaAP[i]], negated when g[i]==Zero. A guard
// with no fixed bit imposes no constraint and returns a field of +Inf
// (vacuously satisfied everywhere).
func FieldFromGuard(obj *domain.Object, g automaton.Guard, grid *domain.SampleGrid, ev spatialeval.Evaluator, dfaAP []string, apToTree map[string]*spatialast.Node) (Field, error) {
	result := make(Field, len(grid.Points))
	for i := range result {
		result[i] = math.Inf(1)
	}

	any := false
	for i, bit := range g {
		if bit == automaton.DontCare {
			continue
		}
		subtree, ok := apToTree[dfaAP[i]]
		if !ok {
			continue
		}
		fm, err := GradientMap(obj, grid, ev, subtree)
		if err != nil {
			return nil, err
		}
		if bit == automaton.Zero {
			for j := range fm {
				fm[j] = -fm[j]
			}
		}
		if !any {
			copy(result, fm)
			any = true
			continue
		}
		for j := range result {
			result[j] = minNaNPropagating(result[j], fm[j])
		}
	}
	return result, nil
}

// CompositeConstraint implements composite_constraint (§4.4): the
// pointwise disjunction (max-fold) of field_from_guard over every guard
// in sog. An empty sog forbids nothing, so it returns a field of -Inf.
func CompositeConstraint(obj *domain.Object, sog automaton.SOG, grid *domain.SampleGrid, ev spatialeval.Evaluator, dfaAP []string, apToTree map[string]*spatialast.Node) (Field, error) {
	result := make(Field, len(grid.Points))
	for i := range result {
		result[i] = math.Inf(-1)
	}

	for _, g := range sog {
		fg, err := FieldFromGuard(obj, g, grid, ev, dfaAP, apToTree)
		if err != nil {
			return nil, err
		}
		for j := range result {
			result[j] = maxNaNPropagating(result[j], fg[j])
		}
	}
	return result, nil
}

func minNaNPropagating(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return math.Min(a, b)
}

func maxNaNPropagating(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.NaN()
	}
	return math.Max(a, b)
}

// MaskForbidden sets field[i]=NaN wherever constraint[i]>0, per
// get_next_step's masking step (§4.5).
func MaskForbidden(field, constraint Field) Field {
	out := make(Field, len(field))
	copy(out, field)
	for i, c := range constraint {
		if !math.IsNaN(c) && c > 0 {
			out[i] = math.NaN()
		}
	}
	return out
}

// FindBestPoint implements find_best_point (§4.5): among grid points with
// field>threshold and not NaN, returns the position of the median index
// (by grid insertion/flat order) among those whose value equals the
// field's maximum. The "median" picked is the lower-middle element when
// the number of maxima is even, for a deterministic, centrally-located
// choice on plateaus.
func FindBestPoint(field Field, threshold float64, grid *domain.SampleGrid) (geometry.Point, bool) {
	var qualifying []int
	best := math.Inf(-1)
	for i, v := range field {
		if math.IsNaN(v) || v <= threshold {
			continue
		}
		qualifying = append(qualifying, i)
		if v > best {
			best = v
		}
	}
	if len(qualifying) == 0 {
		return geometry.Point{}, false
	}

	var maxima []int
	for _, i := range qualifying {
		if field[i] == best {
			maxima = append(maxima, i)
		}
	}
	if len(maxima) == 0 {
		return geometry.Point{}, false
	}

	medianIdx := maxima[(len(maxima)-1)/2]
	return grid.Points[medianIdx], true
}
