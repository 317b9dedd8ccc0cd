package automaton

import (
	"fmt"

	"spatialreq/internal/spatialast"
)

// TreeToDFA is the reference tree_to_dfa implementation of spec.md §6's
// Automaton contract, scoped (per §1's framing of automaton construction
// as an external collaborator) to the F/G/&/|/! fragment spec.md's seed
// scenarios (§8) exercise: a top-level conjunction of Finally/Globally
// obligations, each over a boolean combination of atomic predicates.
//
// Each top-level F(phi)/G(psi) obligation becomes one AP (its inner
// subtree phi/psi), and the DFA is the product automaton of one 2-state
// component per obligation: a Finally component starts "pending" and
// latches to "done" (accepting, absorbing) the first time its subtree
// holds; a Globally component starts "holding" (accepting) and latches
// to "violated" (trap, absorbing) the first time its subtree fails.
func TreeToDFA(root *spatialast.Node) (dfa *DFA, apToTree map[string]*spatialast.Node, traceAP []string, err error) {
	conjuncts := flattenConjuncts(root)

	kinds := make([]spatialast.Kind, len(conjuncts))
	ap := make([]string, len(conjuncts))
	apToTree = make(map[string]*spatialast.Node, len(conjuncts))

	for i, c := range conjuncts {
		switch c.Kind {
		case spatialast.KindFinally, spatialast.KindGlobally:
			kinds[i] = c.Kind
			name := fmt.Sprintf("ap%d", i)
			ap[i] = name
			apToTree[name] = c.Children[0]
		default:
			return nil, nil, nil, fmt.Errorf("automaton: top-level conjunct %d is neither F(...) nor G(...)", i)
		}
	}

	n := len(conjuncts)
	numStates := 1 << uint(n)
	dfa = NewDFA(numStates, ap, acceptingStates(kinds))

	for from := 0; from < numStates; from++ {
		for assignment := 0; assignment < (1 << uint(n)); assignment++ {
			to := nextState(kinds, from, assignment)
			guard := make(Guard, n)
			for i := 0; i < n; i++ {
				if assignment&(1<<uint(i)) != 0 {
					guard[i] = One
				} else {
					guard[i] = Zero
				}
			}
			dfa.AddGuard(from, to, guard)
		}
	}

	for from := 0; from < numStates; from++ {
		for to := 0; to < numStates; to++ {
			if sog := dfa.Guards(from, to); sog != nil {
				dfa.edges[from][to] = Reduce(sog)
			}
		}
	}

	return dfa, apToTree, ap, nil
}

// flattenConjuncts splits a top-level KindAnd tree into its leaves,
// preserving left-to-right order; a non-And root is a single-element
// list.
func flattenConjuncts(n *spatialast.Node) []*spatialast.Node {
	if n.Kind != spatialast.KindAnd {
		return []*spatialast.Node{n}
	}
	var out []*spatialast.Node
	out = append(out, flattenConjuncts(n.Children[0])...)
	out = append(out, flattenConjuncts(n.Children[1])...)
	return out
}

// acceptingStates returns every product state where every Finally
// component's bit is 1 (done) and every Globally component's bit is 0
// (still holding).
func acceptingStates(kinds []spatialast.Kind) []int {
	n := len(kinds)
	var out []int
	for state := 0; state < (1 << uint(n)); state++ {
		good := true
		for i, k := range kinds {
			bit := (state >> uint(i)) & 1
			switch k {
			case spatialast.KindFinally:
				if bit != 1 {
					good = false
				}
			case spatialast.KindGlobally:
				if bit != 0 {
					good = false
				}
			}
		}
		if good {
			out = append(out, state)
		}
	}
	return out
}

// nextState computes the product automaton's successor state given the
// current state and a concrete assignment (one bit per AP, LSB-first).
func nextState(kinds []spatialast.Kind, state, assignment int) int {
	next := 0
	for i, k := range kinds {
		cur := (state >> uint(i)) & 1
		obs := (assignment >> uint(i)) & 1
		var nb int
		switch k {
		case spatialast.KindFinally:
			if cur == 1 {
				nb = 1
			} else if obs == 1 {
				nb = 1
			} else {
				nb = 0
			}
		case spatialast.KindGlobally:
			if cur == 1 {
				nb = 1
			} else if obs == 0 {
				nb = 1
			} else {
				nb = 0
			}
		}
		next |= nb << uint(i)
	}
	return next
}

// ObservationSymbol evaluates every AP's subtree on the current scene via
// ev and returns the concrete Guard spec.md §4.5's register_observation
// feeds to dfa_step, in the given AP order.
func ObservationSymbol(ap []string, apToTree map[string]*spatialast.Node, interpret func(*spatialast.Node) (float64, error)) (Guard, error) {
	g := make(Guard, len(ap))
	for i, name := range ap {
		tree, ok := apToTree[name]
		if !ok {
			return nil, fmt.Errorf("automaton: no subtree registered for AP %q", name)
		}
		v, err := interpret(tree)
		if err != nil {
			return nil, err
		}
		if v > 0 {
			g[i] = One
		} else {
			g[i] = Zero
		}
	}
	return g, nil
}
