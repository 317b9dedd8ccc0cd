package planner

import (
	"sort"

	"spatialreq/internal/automaton"
	"spatialreq/internal/domain"
	"spatialreq/internal/scene"
	"spatialreq/internal/spatialast"
)

// relevantObjects implements spec.md §4.5's relevant_objects: the union,
// over every guard in sog, of the names of movable variables appearing in
// any subtree referenced by a non-DontCare position, excluding the four
// phantom corner objects. Sorted for deterministic iteration.
func relevantObjects(sog automaton.SOG, dfaAP []string, apToTree map[string]*spatialast.Node, scn *scene.Scene) []string {
	set := make(map[string]bool)
	for _, g := range sog {
		for i, bit := range g {
			if bit == automaton.DontCare {
				continue
			}
			tree, ok := apToTree[dfaAP[i]]
			if !ok {
				continue
			}
			for _, leaf := range tree.Leaves() {
				if domain.IsPhantomRegion(leaf.Name) {
					continue
				}
				if obj, ok := scn.Object(leaf.Name); ok && obj.Movable {
					set[leaf.Name] = true
				}
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
