// Package planner implements the Planner Core of spec.md §4.5: the main
// observe -> step -> pick target edge -> search for a feasible
// single-object move -> else prune edge -> else emit request loop.
package planner

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"spatialreq/internal/automaton"
	"spatialreq/internal/domain"
	"spatialreq/internal/geometry"
	"spatialreq/internal/gradient"
	"spatialreq/internal/request"
	"spatialreq/internal/scene"
	"spatialreq/internal/spatialast"
	"spatialreq/internal/spatialeval"
)

// Planner is a single planner instance: a scene, the automaton driver
// wrapping the DFA derived from the spec, a sample grid, and the
// spatial evaluator. Per spec.md §5, a Planner is a synchronous value
// with no internal concurrency; callers must serialize calls into a
// given instance.
type Planner struct {
	InstanceID uuid.UUID

	scene    *scene.Scene
	bounds   domain.Bounds
	grid     *domain.SampleGrid
	driver   *automaton.Driver
	eval     spatialeval.Evaluator
	apToTree map[string]*spatialast.Node
	dfaAP    []string
	phraser  request.Phraser
	log      zerolog.Logger
}

// Option configures optional Planner construction parameters.
type Option func(*Planner)

// WithPhraser overrides the default TemplatePhraser used to render
// request text.
func WithPhraser(p request.Phraser) Option {
	return func(pl *Planner) { pl.phraser = p }
}

// WithLogger overrides the default (disabled) logger.
func WithLogger(l zerolog.Logger) Option {
	return func(pl *Planner) { pl.log = l }
}

// WithEvaluator overrides the default expr-lang-backed Evaluator.
func WithEvaluator(ev spatialeval.Evaluator) Option {
	return func(pl *Planner) { pl.eval = ev }
}

// New constructs a Planner from a spatial spec's surface text, an initial
// object set, workspace bounds and a sample count, per spec.md §6's
// "core consumes only (spec, objects, bounds, samples) at construction".
func New(specText string, objects map[string]*domain.Object, bounds domain.Bounds, samples int, opts ...Option) (*Planner, error) {
	root, err := spatialast.Parse(specText)
	if err != nil {
		return nil, domain.NewPlannerError(domain.ErrCodeSpecParseFailure, "parsing spatial spec", err)
	}

	dfa, apToTree, dfaAP, err := automaton.TreeToDFA(root)
	if err != nil {
		return nil, domain.NewPlannerError(domain.ErrCodeSpecParseFailure, "constructing automaton from spatial spec", err)
	}

	grid, err := domain.NewSampleGrid(bounds, samples)
	if err != nil {
		return nil, err
	}

	scn := scene.New(objects, bounds)

	p := &Planner{
		InstanceID: uuid.New(),
		scene:      scn,
		bounds:     bounds,
		grid:       grid,
		driver:     automaton.NewDriver(dfa, 0),
		eval:       spatialeval.NewExprEvaluator(),
		apToTree:   apToTree,
		dfaAP:      dfaAP,
		phraser:    request.TemplatePhraser{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, name := range p.scene.SortedNames() {
		obj, _ := p.scene.Object(name)
		p.eval.AssignVariable(name, obj.Shape)
	}

	return p, nil
}

// RegisterObservation implements spec.md §4.5's register_observation:
// replace matched objects' polygons, compute the observation symbol, and
// advance the working current state against the original DFA.
func (p *Planner) RegisterObservation(observations map[string]geometry.Polygon) error {
	ignored := p.scene.RegisterObservation(observations)
	if len(ignored) > 0 {
		p.log.Warn().Strs("objects", ignored).Msg("observation named unknown objects; ignored")
	}

	for _, name := range p.scene.SortedNames() {
		obj, _ := p.scene.Object(name)
		p.eval.AssignVariable(name, obj.Shape)
	}

	obs, err := automaton.ObservationSymbol(p.dfaAP, p.apToTree, p.eval.Interpret)
	if err != nil {
		return fmt.Errorf("computing observation symbol: %w", err)
	}

	if err := p.driver.DFAStep(obs, p.dfaAP); err != nil {
		p.log.Error().Err(err).Str("symbol", obs.String()).Int("state", p.driver.CurrentState()).
			Msg("observation symbol matched no outgoing edge")
		return err
	}
	return nil
}

// GetNextStep implements spec.md §4.5's get_next_step main loop.
func (p *Planner) GetNextStep() (domain.Command, error) {
	for {
		targetSOG, constraintSOG, edge := p.driver.PlanStep()

		if p.driver.CurrentlyAccepting() {
			p.log.Debug().Msg("spec already satisfied")
			return domain.NewNoneCommand(), nil
		}

		if edge == automaton.NoEdge {
			if reqEdge, ok := p.driver.FindSmallestRequest(p.driver.CurrentState()); ok {
				text := request.Synthesize(p.driver.Orig(), reqEdge, p.dfaAP, p.apToTree, p.phraser)
				p.log.Debug().Str("request", text).Msg("emitting request: no forward target edge")
				return domain.NewRequestCommand(text, reqEdge), nil
			}
			p.log.Debug().Msg("infeasible: no target edge and no fallback request")
			return domain.NewNoneCommand(), nil
		}

		cmd, found, err := p.searchFeasibleMove(targetSOG, constraintSOG, edge)
		if err != nil {
			return domain.Command{}, err
		}
		if found {
			p.log.Debug().Str("object", cmd.ObjectName).Msg("found feasible single-object move")
			return cmd, nil
		}

		p.log.Debug().Int("from", edge.From).Int("to", edge.To).Msg("pruning edge: no feasible move found")
		p.driver.PruneEdge(edge)
	}
}

// searchFeasibleMove implements get_next_step step 4: for each movable
// relevant object (sorted), and each guard in targetSOG (insertion
// order), search the masked field for a feasible point.
func (p *Planner) searchFeasibleMove(targetSOG, constraintSOG automaton.SOG, edge domain.Edge) (domain.Command, bool, error) {
	for _, name := range relevantObjects(targetSOG, p.dfaAP, p.apToTree, p.scene) {
		obj, _ := p.scene.Object(name)

		constraintField, err := gradient.CompositeConstraint(obj, constraintSOG, p.grid, p.eval, p.dfaAP, p.apToTree)
		if err != nil {
			return domain.Command{}, false, err
		}

		for _, g := range targetSOG {
			field, err := gradient.FieldFromGuard(obj, g, p.grid, p.eval, p.dfaAP, p.apToTree)
			if err != nil {
				return domain.Command{}, false, err
			}
			masked := gradient.MaskForbidden(field, constraintField)
			if pos, ok := gradient.FindBestPoint(masked, 0, p.grid); ok {
				return domain.NewExecuteCommand(name, pos, edge), true, nil
			}
		}
	}
	return domain.Command{}, false, nil
}

// SpecSatisfied reports whether the current automaton state is accepting,
// for transport-layer "spec_satisfied" fields.
func (p *Planner) SpecSatisfied() bool {
	return p.driver.CurrentlyAccepting()
}

// PruneEdgeManually exposes PruneEdge for callers (e.g. scenario tests
// and operator tooling) that need to force-prune an edge outside the
// normal get_next_step loop.
func (p *Planner) PruneEdgeManually(edge domain.Edge) {
	p.driver.PruneEdge(edge)
}

// Bounds returns the planner's immutable workspace bounds.
func (p *Planner) Bounds() domain.Bounds { return p.bounds }
