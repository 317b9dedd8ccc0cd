package automaton

import (
	"sort"

	"spatialreq/internal/domain"
)

// NoEdge is the sentinel domain.Edge returned when no target edge exists
// (the automaton is stuck with only infeasible outgoing transitions).
var NoEdge = domain.Edge{From: -1, To: -1}

// PrunedEntry records one edge pruned from a node's outgoing set, per
// spec.md §3's Pruned-Edge Record.
type PrunedEntry struct {
	Target int
	Cost   int
}

// Driver is the Automaton Driver of spec.md §4.2: it owns the original
// (immutable) and working (prunable) copies of a DFA plus the current
// state and the pruned-edge table.
type Driver struct {
	orig    *DFA
	working *DFA
	current int
	start   int
	pruned  map[int][]PrunedEntry
}

// NewDriver wraps dfa as both the original and working copy, starting at
// node `start`.
func NewDriver(dfa *DFA, start int) *Driver {
	return &Driver{
		orig:    dfa,
		working: dfa.Clone(),
		current: start,
		start:   start,
		pruned:  make(map[int][]PrunedEntry),
	}
}

// Orig returns the immutable original DFA, used for observation stepping
// and request synthesis.
func (d *Driver) Orig() *DFA { return d.orig }

// Working returns the prunable planning-view DFA.
func (d *Driver) Working() *DFA { return d.working }

// CurrentState returns the automaton's current node.
func (d *Driver) CurrentState() int { return d.current }

// ResetState rewinds the current node to the start state.
func (d *Driver) ResetState() { d.current = d.start }

// CurrentlyAccepting reports whether the current node is in the
// accepting set (checked against orig, which never loses nodes).
func (d *Driver) CurrentlyAccepting() bool {
	return d.orig.IsAccepting(d.current)
}

// DFAStep advances the current state on a concrete observation, given in
// traceAP order, by finding the unique outgoing edge of orig whose SOG
// (reordered onto traceAP by name) contains the assignment. Returns a
// *domain.PlannerError with ErrCodeProtocolViolation if no edge matches.
func (d *Driver) DFAStep(obs Guard, traceAP []string) error {
	for _, e := range d.orig.OutgoingEdges(d.current) {
		sog := d.orig.Guards(e.From, e.To)
		selected := Select(obs, sog, traceAP, d.orig.AP)
		if len(selected) > 0 {
			d.current = e.To
			return nil
		}
	}
	return domain.NewPlannerError(
		domain.ErrCodeProtocolViolation,
		"observation symbol matches no outgoing edge",
		nil,
	)
}

// PlanStep implements spec.md §4.2's plan_step: returns the target SOG,
// the constraint SOG (union of every other non-self-loop outgoing edge),
// and the chosen edge. If the current state is accepting, returns
// (nil, nil, self-loop). If no path to acceptance exists via any
// non-self-loop edge, returns (nil, nil, NoEdge).
func (d *Driver) PlanStep() (targetSOG, constraintSOG SOG, edge domain.Edge) {
	u := d.current
	if d.CurrentlyAccepting() {
		return nil, nil, domain.Edge{From: u, To: u}
	}

	type candidate struct {
		to   int
		dist int
	}
	var candidates []candidate
	for _, e := range d.working.OutgoingEdges(u) {
		if e.To == u {
			continue
		}
		dist := d.working.distanceToAccepting(e.To)
		if dist < 0 {
			continue
		}
		candidates = append(candidates, candidate{e.To, dist})
	}
	if len(candidates) == 0 {
		return nil, nil, NoEdge
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].to < candidates[j].to
	})
	best := candidates[0]
	targetEdge := domain.Edge{From: u, To: best.to}
	targetSOG = d.working.Guards(u, best.to)

	for _, e := range d.working.OutgoingEdges(u) {
		if e.To == u || e.To == best.to {
			continue
		}
		constraintSOG = Union(constraintSOG, d.working.Guards(u, e.To))
	}

	return targetSOG, constraintSOG, targetEdge
}

// PruneEdge removes edge (u,v) from the working DFA and records it in the
// pruned-edge table with its Hamming-distance cost to the self-loop, per
// spec.md §4.6.
func (d *Driver) PruneEdge(edge domain.Edge) {
	u, v := edge.From, edge.To
	targetGuards := d.working.Guards(u, v)
	loopGuards := d.working.SelfLoopGuards(u)

	cost := -1
	for _, t := range targetGuards {
		for _, l := range loopGuards {
			hd := t.HammingDistance(l)
			if cost == -1 || hd < cost {
				cost = hd
			}
		}
	}
	if cost == -1 {
		cost = 0
	}

	d.pruned[u] = append(d.pruned[u], PrunedEntry{Target: v, Cost: cost})
	d.working.RemoveEdge(u, v)
}

// FindSmallestRequest implements spec.md §4.6's find_smallest_request:
// among pruned_edges[u], keep targets with an accepting path in orig and
// return the smallest-cost one (ties broken by smallest node id). The
// bool result is false if no candidate qualifies.
func (d *Driver) FindSmallestRequest(u int) (domain.Edge, bool) {
	entries := d.pruned[u]
	best := -1
	bestCost := 0
	bestNode := 0
	for _, e := range entries {
		if !d.orig.HasPathToAccepting(e.Target) {
			continue
		}
		if best == -1 || e.Cost < bestCost || (e.Cost == bestCost && e.Target < bestNode) {
			best = e.Target
			bestCost = e.Cost
			bestNode = e.Target
		}
	}
	if best == -1 {
		return domain.Edge{}, false
	}
	return domain.Edge{From: u, To: best}, true
}

// PrunedEdges returns the pruned-edge table for node u, for inspection
// (e.g. by tests or diagnostics).
func (d *Driver) PrunedEdges(u int) []PrunedEntry {
	return d.pruned[u]
}
