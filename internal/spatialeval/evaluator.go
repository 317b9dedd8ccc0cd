// Package spatialeval provides the default, in-process implementation of
// the Spatial Evaluator contract of spec.md §6: assign_variable,
// reset_spatial_dict and interpret. Parsing is not part of this package;
// it is spatialast.Parse. spec.md treats this component as an
// external collaborator; this package is the reference implementation
// needed to make the planner core runnable and testable.
package spatialeval

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"spatialreq/internal/geometry"
	"spatialreq/internal/spatialast"
)

// Evaluator is the contract the Planner Core, Gradient-Map Engine and
// Guard-to-Field Compiler depend on.
type Evaluator interface {
	AssignVariable(name string, shape geometry.Polygon)
	ResetSpatialDict()
	Interpret(node *spatialast.Node) (float64, error)
}

// env is the small geometry function environment every compiled
// predicate program runs against, following the teacher's
// ConditionEvaluator pattern of compiling a string expression once and
// caching the *vm.Program, then re-running it per call with fresh
// variable bindings.
type env struct {
	A, B geometry.Polygon
	K    float64
}

func (e env) CenterX(which string) float64 {
	if which == "a" {
		return e.A.Centroid().X
	}
	return e.B.Centroid().X
}

func (e env) CenterY(which string) float64 {
	if which == "a" {
		return e.A.Centroid().Y
	}
	return e.B.Centroid().Y
}

func (e env) Dist() float64 {
	return e.A.Centroid().Dist(e.B.Centroid())
}

func (e env) Ovlp() float64 {
	if e.A.Overlaps(e.B) {
		return 1
	}
	return -1
}

func (e env) Contains() float64 {
	if e.B.ContainsPoint(e.A.Centroid()) {
		return 1
	}
	return -1
}

// ExprEvaluator compiles each atomic spatial predicate into a cached
// expr-lang program over the env above, mirroring
// ConditionEvaluator.getCompiledProgram's compile-once-cache-forever
// idiom from the teacher.
type ExprEvaluator struct {
	vars    map[string]geometry.Polygon
	cache   map[spatialast.PredicateKind]*vm.Program
}

// NewExprEvaluator constructs an evaluator with an empty variable dict.
func NewExprEvaluator() *ExprEvaluator {
	return &ExprEvaluator{
		vars:  make(map[string]geometry.Polygon),
		cache: make(map[spatialast.PredicateKind]*vm.Program),
	}
}

// AssignVariable binds name to shape in the evaluator's variable dict.
func (e *ExprEvaluator) AssignVariable(name string, shape geometry.Polygon) {
	e.vars[name] = shape
}

// ResetSpatialDict clears every variable binding.
func (e *ExprEvaluator) ResetSpatialDict() {
	e.vars = make(map[string]geometry.Polygon)
}

func (e *ExprEvaluator) lookup(name string) (geometry.Polygon, error) {
	shape, ok := e.vars[name]
	if !ok {
		return geometry.Polygon{}, fmt.Errorf("spatial evaluator: unassigned variable %q", name)
	}
	return shape, nil
}

func exprFor(kind spatialast.PredicateKind) string {
	switch kind {
	case spatialast.PredLeftOf:
		return "CenterX(\"b\") - CenterX(\"a\")"
	case spatialast.PredRightOf:
		return "CenterX(\"a\") - CenterX(\"b\")"
	case spatialast.PredAbove:
		return "CenterY(\"a\") - CenterY(\"b\")"
	case spatialast.PredBelow:
		return "CenterY(\"b\") - CenterY(\"a\")"
	case spatialast.PredOverlaps:
		return "Ovlp()"
	case spatialast.PredInside:
		return "Contains()"
	case spatialast.PredDistLE:
		return "K - Dist()"
	case spatialast.PredDistGE:
		return "Dist() - K"
	default:
		return ""
	}
}

func (e *ExprEvaluator) getCompiledProgram(kind spatialast.PredicateKind) (*vm.Program, error) {
	if p, ok := e.cache[kind]; ok {
		return p, nil
	}
	src := exprFor(kind)
	if src == "" {
		return nil, fmt.Errorf("spatial evaluator: unknown predicate kind %v", kind)
	}
	program, err := expr.Compile(src, expr.Env(env{}))
	if err != nil {
		return nil, fmt.Errorf("spatial evaluator: compiling predicate %v: %w", kind, err)
	}
	e.cache[kind] = program
	return program, nil
}

// Interpret evaluates node's quantitative satisfaction value: positive
// means satisfied. Atomic predicates run a cached expr program; boolean
// connectives combine children with fuzzy min/max/negate so that
// Interpret remains meaningful on any subtree, not only leaves.
func (e *ExprEvaluator) Interpret(node *spatialast.Node) (float64, error) {
	switch node.Kind {
	case spatialast.KindPredicate:
		return e.interpretPredicate(node)
	case spatialast.KindAnd:
		return e.combine(node.Children, math.Min)
	case spatialast.KindOr:
		return e.combine(node.Children, math.Max)
	case spatialast.KindNot:
		v, err := e.Interpret(node.Children[0])
		if err != nil {
			return 0, err
		}
		return -v, nil
	case spatialast.KindFinally, spatialast.KindGlobally:
		// The temporal operators are resolved by the automaton, not by the
		// evaluator; interpreting their inner subtree is the evaluator's
		// job when called for gradient/field computations.
		return e.Interpret(node.Children[0])
	default:
		return 0, fmt.Errorf("spatial evaluator: unsupported node kind %v", node.Kind)
	}
}

func (e *ExprEvaluator) combine(children []*spatialast.Node, fold func(a, b float64) float64) (float64, error) {
	result := math.NaN()
	for i, c := range children {
		v, err := e.Interpret(c)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			result = v
			continue
		}
		if math.IsNaN(result) || math.IsNaN(v) {
			result = math.NaN()
			continue
		}
		result = fold(result, v)
	}
	return result, nil
}

func (e *ExprEvaluator) interpretPredicate(node *spatialast.Node) (float64, error) {
	a, err := e.lookup(node.Left)
	if err != nil {
		return 0, err
	}
	b, err := e.lookup(node.Right)
	if err != nil {
		return 0, err
	}
	program, err := e.getCompiledProgram(node.Predicate)
	if err != nil {
		return 0, err
	}
	out, err := expr.Run(program, env{A: a, B: b, K: node.Threshold})
	if err != nil {
		return 0, fmt.Errorf("spatial evaluator: running predicate %v: %w", node.Predicate, err)
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("spatial evaluator: predicate %v returned non-float64 %T", node.Predicate, out)
	}
	return v, nil
}
