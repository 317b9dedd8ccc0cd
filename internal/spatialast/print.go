package spatialast

import "fmt"

// Print renders n as human-readable text, the reference pretty-printer
// spec.md §1 lists as an external collaborator. Predicates, F/G, & and |
// use the surface syntax Parse accepts; a negation renders as "(not ...)",
// which Parse does not accept (it reads negation as "!").
// The Request Synthesizer (§4.7) calls this on AP subtrees (the inner
// formula of each top-level F/G), never on a full temporal formula.
func Print(n *Node) string {
	switch n.Kind {
	case KindFinally:
		return fmt.Sprintf("F(%s)", Print(n.Children[0]))
	case KindGlobally:
		return fmt.Sprintf("G(%s)", Print(n.Children[0]))
	case KindAnd:
		return fmt.Sprintf("(%s & %s)", Print(n.Children[0]), Print(n.Children[1]))
	case KindOr:
		return fmt.Sprintf("(%s | %s)", Print(n.Children[0]), Print(n.Children[1]))
	case KindNot:
		return fmt.Sprintf("(not %s)", Print(n.Children[0]))
	case KindPredicate:
		return printPredicate(n)
	default:
		return "?"
	}
}

func printPredicate(n *Node) string {
	switch n.Predicate {
	case PredLeftOf:
		return fmt.Sprintf("%s leftof %s", n.Left, n.Right)
	case PredRightOf:
		return fmt.Sprintf("%s rightof %s", n.Left, n.Right)
	case PredAbove:
		return fmt.Sprintf("%s above %s", n.Left, n.Right)
	case PredBelow:
		return fmt.Sprintf("%s below %s", n.Left, n.Right)
	case PredOverlaps:
		return fmt.Sprintf("%s overlaps %s", n.Left, n.Right)
	case PredInside:
		return fmt.Sprintf("%s inside %s", n.Left, n.Right)
	case PredDistLE:
		return fmt.Sprintf("%s dist %s <= %g", n.Left, n.Right, n.Threshold)
	case PredDistGE:
		return fmt.Sprintf("%s dist %s >= %g", n.Left, n.Right, n.Threshold)
	default:
		return "?"
	}
}
