// Package automaton implements the Guard Algebra and Automaton Driver of
// spec.md §4.1/§4.2: ternary guards over atomic propositions, sets of
// guards (SOGs) labeling DFA edges, and the DFA itself.
package automaton

import "sort"

// Bit is a ternary value: ident the fixed bits of a Guard plus "don't
// care". Per spec.md §9's design note, this replaces the Python source's
// '0'/'1'/'X' character strings with a typed three-valued vector.
type Bit int8

const (
	Zero Bit = iota
	One
	DontCare
)

func (b Bit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "X"
	}
}

// Guard is a fixed-length ternary cube, one Bit per AP position.
type Guard []Bit

// String renders the guard the way logs and request text expect it.
func (g Guard) String() string {
	out := make([]byte, len(g))
	for i, b := range g {
		out[i] = b.String()[0]
	}
	return string(out)
}

// Clone returns an independent copy of g.
func (g Guard) Clone() Guard {
	cp := make(Guard, len(g))
	copy(cp, g)
	return cp
}

// WithBit returns a copy of g with position i set to v.
func (g Guard) WithBit(i int, v Bit) Guard {
	cp := g.Clone()
	cp[i] = v
	return cp
}

// Flipped returns a copy of g with position i's fixed bit flipped (0<->1);
// DontCare positions are returned unchanged, mirroring flip_guard_bit.
func (g Guard) Flipped(i int) Guard {
	cp := g.Clone()
	switch g[i] {
	case Zero:
		cp[i] = One
	case One:
		cp[i] = Zero
	}
	return cp
}

// Matches reports whether assignment (a fully concrete guard, no
// DontCare) satisfies g: every non-DontCare position of g equals the
// corresponding position of assignment.
func (g Guard) Matches(assignment Guard) bool {
	if len(g) != len(assignment) {
		return false
	}
	for i, b := range g {
		if b == DontCare {
			continue
		}
		if b != assignment[i] {
			return false
		}
	}
	return true
}

// CompatibleWith reports whether g and h can describe overlapping
// assignments: every position where both are fixed must agree. This is
// compare_obs from the Python source, generalized to any pair of guards
// (not just a concrete one vs. a guard).
func (g Guard) CompatibleWith(h Guard) bool {
	if len(g) != len(h) {
		return false
	}
	for i := range g {
		if g[i] == DontCare || h[i] == DontCare {
			continue
		}
		if g[i] != h[i] {
			return false
		}
	}
	return true
}

// Subsumes reports whether g subsumes h: every fixed bit of g matches h,
// and h has no DontCare where g has a fixed bit.
func (g Guard) Subsumes(h Guard) bool {
	if len(g) != len(h) {
		return false
	}
	for i := range g {
		if g[i] == DontCare {
			continue
		}
		if h[i] == DontCare || h[i] != g[i] {
			return false
		}
	}
	return true
}

// HammingDistance counts positions where both guards are fixed and
// differ; DontCare positions (on either side) never contribute. Used by
// prune_edge's cost computation (§4.6).
func (g Guard) HammingDistance(h Guard) int {
	n := len(g)
	if len(h) < n {
		n = len(h)
	}
	d := 0
	for i := 0; i < n; i++ {
		if g[i] == DontCare || h[i] == DontCare {
			continue
		}
		if g[i] != h[i] {
			d++
		}
	}
	return d
}

// Expand returns the set of fully concrete guards (no DontCare) that g
// covers, recursing over DontCare positions. Mirrors resolve_all_x.
func (g Guard) Expand() []Guard {
	idx := -1
	for i, b := range g {
		if b == DontCare {
			idx = i
			break
		}
	}
	if idx == -1 {
		return []Guard{g.Clone()}
	}
	var out []Guard
	out = append(out, g.WithBit(idx, Zero).Expand()...)
	out = append(out, g.WithBit(idx, One).Expand()...)
	return out
}

// SOG is a set of guards labeling a single DFA edge. Insertion order is
// preserved since §4.5 iterates SOGs "in insertion order".
type SOG []Guard

// contains reports whether sog already has a guard with the same string
// form as g (set semantics on top of a slice, preserving order).
func (sog SOG) contains(g Guard) bool {
	for _, h := range sog {
		if h.String() == g.String() {
			return true
		}
	}
	return false
}

// Add appends g to sog if not already present, preserving insertion order.
func (sog SOG) Add(g Guard) SOG {
	if sog.contains(g) {
		return sog
	}
	return append(sog, g)
}

// Union returns a new SOG containing every distinct guard from a and b,
// a's guards first, in insertion order.
func Union(a, b SOG) SOG {
	out := make(SOG, 0, len(a)+len(b))
	for _, g := range a {
		out = out.Add(g)
	}
	for _, g := range b {
		out = out.Add(g)
	}
	return out
}

// Matches reports whether any guard in sog matches assignment.
func (sog SOG) Matches(assignment Guard) bool {
	for _, g := range sog {
		if g.Matches(assignment) {
			return true
		}
	}
	return false
}

// Select returns the subset of sog consistent with guard, reordering
// guard's APs (guardAP) onto sog's APs (sogAP) by name first. Mirrors
// sog_fits_to_guard.
func Select(guard Guard, sog SOG, guardAP, sogAP []string) SOG {
	indexOf := make(map[string]int, len(sogAP))
	for i, ap := range sogAP {
		indexOf[ap] = i
	}

	out := make(SOG, len(sog))
	copy(out, sog)

	for i, bit := range guard {
		if bit == DontCare {
			continue
		}
		j, ok := indexOf[guardAP[i]]
		if !ok {
			continue
		}
		filtered := out[:0:0]
		for _, g := range out {
			if g[j] == DontCare || g[j] == bit {
				filtered = append(filtered, g)
			}
		}
		out = filtered
	}
	return out
}

// Reduce computes a minimal SOG covering the same concrete assignments as
// sog: a Quine-McCluskey-style prime-implicant reduction (§4.1). It need
// not be optimal, only correct and monotonically shrinking.
func Reduce(sog SOG) SOG {
	if len(sog) == 0 {
		return SOG{}
	}

	seen := map[string]Guard{}
	addUnique := func(g Guard) {
		seen[g.String()] = g
	}
	for _, g := range sog {
		for _, concrete := range g.Expand() {
			addUnique(concrete)
		}
	}

	for {
		changedAny := false
		current := make([]Guard, 0, len(seen))
		for _, g := range seen {
			current = append(current, g)
		}
		// Deterministic iteration order: lexicographic on guard strings.
		sort.Slice(current, func(i, j int) bool { return current[i].String() < current[j].String() })

		for _, g := range current {
			for i := range g {
				test := g.Flipped(i)
				if test.String() == g.String() {
					continue
				}
				if _, ok := seen[test.String()]; !ok {
					continue
				}
				reduced := g.WithBit(i, DontCare)
				key := reduced.String()
				if _, ok := seen[key]; !ok {
					seen[key] = reduced
					changedAny = true
				}
			}
		}
		if !changedAny {
			break
		}
	}

	all := make([]Guard, 0, len(seen))
	for _, g := range seen {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].String() < all[j].String() })

	unnecessary := map[string]bool{}
	for _, g := range all {
		for _, h := range all {
			if g.String() == h.String() {
				continue
			}
			if g.Subsumes(h) {
				unnecessary[h.String()] = true
			}
		}
	}

	out := make(SOG, 0, len(all))
	for _, g := range all {
		if !unnecessary[g.String()] {
			out = append(out, g)
		}
	}
	return out
}
