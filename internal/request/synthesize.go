package request

import (
	"strings"

	"spatialreq/internal/automaton"
	"spatialreq/internal/domain"
	"spatialreq/internal/spatialast"
)

// Synthesize implements spec.md §4.7's generate_request_str: reduce the
// pruned edge's original guard set, then render "Please help me
// achieve:\n" followed by each guard's clause (its non-DontCare positions'
// subtree texts joined by newline), clause groups separated by "\nOR\n".
// A Zero bit yields the negation of its subtree's text, with the
// documented "(not ...)" simplification. The result is passed through
// phraser before being returned.
//
// Per spec.md §9's open question (the Python source's commented-out
// redundancy check against the constraint SOG, disabled with "WHEN IS
// THIS NOT SOUND?"), this reproduces the unfiltered behavior: no check
// against constraintSOG is performed here, by design.
func Synthesize(orig *automaton.DFA, edge domain.Edge, dfaAP []string, apToTree map[string]*spatialast.Node, phraser Phraser) string {
	target := automaton.Reduce(orig.Guards(edge.From, edge.To))

	groups := make([]string, 0, len(target))
	for _, g := range target {
		var lines []string
		for i, bit := range g {
			if bit == automaton.DontCare {
				continue
			}
			text := spatialast.Print(apToTree[dfaAP[i]])
			if bit == automaton.Zero {
				text = negate(text)
			}
			lines = append(lines, text)
		}
		groups = append(groups, strings.Join(lines, "\n"))
	}

	templated := "Please help me achieve:\n" + strings.Join(groups, "\nOR\n")
	return phraser.Phrase(templated)
}

// negate implements the Python source's small textual simplification: if
// text already reads "(not ...)", strip the wrapper instead of
// double-negating; otherwise wrap it in "not(...)".
func negate(text string) string {
	if strings.HasPrefix(text, "(not") && strings.HasSuffix(text, ")") {
		inner := strings.TrimSuffix(strings.TrimPrefix(text, "(not"), ")")
		return strings.TrimSpace(inner)
	}
	return "not(" + text + ")"
}
