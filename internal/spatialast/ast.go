// Package spatialast defines the parsed-tree representation of a spatial
// spec, per spec.md §6's Spatial Evaluator contract and §9's note that the
// subtree exposes an iterator over leaf tokens with a kind tag. Parsing
// (§6, "out of scope, external contract") is implemented here as a
// reference recursive-descent parser scoped to the F/G/&/|/! temporal
// fragment actually exercised by spec.md's seed scenarios (§8).
package spatialast

// Kind tags every node in the tree, temporal operators, boolean
// connectives, and the atomic spatial predicates.
type Kind int

const (
	KindFinally Kind = iota // F(phi)
	KindGlobally            // G(phi)
	KindAnd                 // phi & psi
	KindOr                  // phi | psi
	KindNot                 // !phi
	KindPredicate           // an atomic spatial predicate (a leaf)
)

// PredicateKind enumerates the atomic spatial relations a leaf predicate
// may express.
type PredicateKind int

const (
	PredLeftOf PredicateKind = iota
	PredRightOf
	PredAbove
	PredBelow
	PredOverlaps
	PredDistLE
	PredDistGE
	PredInside
)

// Node is one node of a parsed spatial-temporal spec tree.
type Node struct {
	Kind     Kind
	Children []*Node

	// Fields valid only when Kind == KindPredicate.
	Predicate PredicateKind
	Left      string
	Right     string
	Threshold float64 // used by PredDistLE / PredDistGE
}

// TokenKind tags a leaf token yielded by Leaves.
type TokenKind int

const (
	TokenObjectRef TokenKind = iota
)

// Token is a single leaf reference surfaced for traversal, e.g. by
// relevant_objects (§4.5) hunting for movable object names.
type Token struct {
	Kind TokenKind
	Name string
}

// Leaves returns every object-name token referenced transitively under n,
// in tree-walk order, mirroring the "iterate and filter by kind" pattern
// of spec.md §9.
func (n *Node) Leaves() []Token {
	var out []Token
	n.walkLeaves(&out)
	return out
}

func (n *Node) walkLeaves(out *[]Token) {
	if n == nil {
		return
	}
	if n.Kind == KindPredicate {
		*out = append(*out, Token{Kind: TokenObjectRef, Name: n.Left})
		if n.Right != "" {
			*out = append(*out, Token{Kind: TokenObjectRef, Name: n.Right})
		}
		return
	}
	for _, c := range n.Children {
		c.walkLeaves(out)
	}
}

// Finally, Globally, And, Or and Not are constructors matching the
// temporal/boolean fragment spec.md's scenarios use.
func Finally(phi *Node) *Node  { return &Node{Kind: KindFinally, Children: []*Node{phi}} }
func Globally(phi *Node) *Node { return &Node{Kind: KindGlobally, Children: []*Node{phi}} }
func And(phi, psi *Node) *Node { return &Node{Kind: KindAnd, Children: []*Node{phi, psi}} }
func Or(phi, psi *Node) *Node  { return &Node{Kind: KindOr, Children: []*Node{phi, psi}} }
func Not(phi *Node) *Node      { return &Node{Kind: KindNot, Children: []*Node{phi}} }

// LeftOf, RightOf, Above, Below, Overlaps, DistLE, DistGE and Inside build
// leaf predicate nodes over two object names (Inside/distance predicates
// use Right as the reference object/region name).
func LeftOf(a, b string) *Node    { return &Node{Kind: KindPredicate, Predicate: PredLeftOf, Left: a, Right: b} }
func RightOf(a, b string) *Node   { return &Node{Kind: KindPredicate, Predicate: PredRightOf, Left: a, Right: b} }
func Above(a, b string) *Node     { return &Node{Kind: KindPredicate, Predicate: PredAbove, Left: a, Right: b} }
func Below(a, b string) *Node     { return &Node{Kind: KindPredicate, Predicate: PredBelow, Left: a, Right: b} }
func Overlaps(a, b string) *Node  { return &Node{Kind: KindPredicate, Predicate: PredOverlaps, Left: a, Right: b} }
func Inside(a, b string) *Node    { return &Node{Kind: KindPredicate, Predicate: PredInside, Left: a, Right: b} }

func DistLE(a, b string, k float64) *Node {
	return &Node{Kind: KindPredicate, Predicate: PredDistLE, Left: a, Right: b, Threshold: k}
}
func DistGE(a, b string, k float64) *Node {
	return &Node{Kind: KindPredicate, Predicate: PredDistGE, Left: a, Right: b, Threshold: k}
}
