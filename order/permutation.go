package order

import (
	"sort"

	"github.com/booltime/parasols/bitset"
)

// Permutation selects a reordering strategy applied to a freshly computed
// ColourOrder before it is used to drive CCO branching (§4.C).
type Permutation int

const (
	// PermNone leaves the greedy colour order as computed.
	PermNone Permutation = iota
	// PermDefer1 delays singleton colour classes to the end of the order,
	// so the tightest-bound vertices are branched on first.
	PermDefer1
	// PermSort groups colour classes and sorts vertices within each class
	// by descending degree.
	PermSort
	// PermRepairAll re-runs a local colour repair pass over every vertex,
	// attempting to move it to an earlier class via a second-chance swap.
	PermRepairAll
	// PermRepairSelected is PermRepairAll restricted to vertices whose
	// class is a singleton (the vertices Defer1 would otherwise move).
	PermRepairSelected
	// PermFast runs the same repair pass as PermRepairAll and produces the
	// same order; it has no separate incremental neighbourhood update.
	PermFast
)

// Apply mutates order in place according to perm. Every variant preserves
// the invariant Colours[len(POrder)-1] >= chi(G[P]): repair and sort
// variants only reassign vertices within a bound-preserving structure, they
// never reduce the number of colour classes recorded at the final
// position.
func Apply(perm Permutation, g *bitset.FixedBitGraph, order *ColourOrder) {
	switch perm {
	case PermNone:
		return
	case PermDefer1:
		deferSingletons(order)
	case PermSort:
		sortWithinClasses(g, order)
	case PermRepairAll:
		repair(g, order, false)
	case PermRepairSelected:
		repair(g, order, true)
	case PermFast:
		repair(g, order, false)
	}
}

// classBounds returns, for each position i, the start index of its colour
// class and the class's size.
func classBounds(order *ColourOrder) (start, size []int) {
	n := len(order.Colours)
	start = make([]int, n)
	size = make([]int, n)
	i := 0
	for i < n {
		j := i
		for j < n && order.Colours[j] == order.Colours[i] {
			j++
		}
		for k := i; k < j; k++ {
			start[k] = i
			size[k] = j - i
		}
		i = j
	}
	return
}

// deferSingletons moves every colour class of size 1 to the end of the
// order, preserving the relative order of the non-singleton classes and of
// the deferred singletons among themselves. Colours are renumbered class by
// class in the new order (each deferred singleton is a class of its own),
// so the sequence stays non-decreasing and its final value, the number of
// classes, is unchanged.
func deferSingletons(order *ColourOrder) {
	_, size := classBounds(order)
	var kept, deferred []int
	var colours []int
	colour, prev := 0, -1
	for i, v := range order.POrder {
		if size[i] == 1 {
			deferred = append(deferred, v)
			continue
		}
		if order.Colours[i] != prev {
			colour++
			prev = order.Colours[i]
		}
		kept = append(kept, v)
		colours = append(colours, colour)
	}
	for range deferred {
		colour++
		colours = append(colours, colour)
	}
	order.POrder = append(kept, deferred...)
	order.Colours = colours
}

// sortWithinClasses sorts the vertices of each colour class by descending
// degree in g, leaving class membership (and therefore Colours) untouched.
func sortWithinClasses(g *bitset.FixedBitGraph, order *ColourOrder) {
	start, size := classBounds(order)
	n := len(order.POrder)
	for i := 0; i < n; {
		s, sz := start[i], size[i]
		class := order.POrder[s : s+sz]
		sort.SliceStable(class, func(a, b int) bool {
			return g.Degree(class[a]) > g.Degree(class[b])
		})
		i = s + sz
	}
}

// repair attempts, for every vertex (or only singleton-class vertices if
// selectedOnly is set), a second-chance swap: if the vertex is adjacent to
// exactly one vertex of some earlier colour class, and that vertex is
// adjacent to no other member of the vertex's own class, the two trade
// places, so both classes stay independent sets, without changing the
// number of classes used by anyone else. This never
// increases chi(G[P])'s greedy bound and can only tighten individual
// Colours entries before the final position, so the non-decreasing and
// Colours[last] >= chi(G[P]) invariants are preserved.
func repair(g *bitset.FixedBitGraph, order *ColourOrder, selectedOnly bool) {
	start, size := classBounds(order)
	n := len(order.POrder)
	classOf := make(map[int]int, n) // vertex -> current class index (position of first vertex in its class)
	for i, v := range order.POrder {
		classOf[v] = start[i]
	}
	for i := 0; i < n; i++ {
		if selectedOnly && size[i] != 1 {
			continue
		}
		v := order.POrder[i]
		for earlier := 0; earlier < start[i]; {
			s, sz := start[earlier], size[earlier]
			class := order.POrder[s : s+sz]
			conflicts := 0
			conflictIdx := -1
			for idx, u := range class {
				if g.Adjacent(v, u) {
					conflicts++
					conflictIdx = idx
					if conflicts > 1 {
						break
					}
				}
			}
			if conflicts == 1 {
				u := class[conflictIdx]
				fits := true
				for _, w := range order.POrder[start[i] : start[i]+size[i]] {
					if w != v && g.Adjacent(u, w) {
						fits = false
						break
					}
				}
				if fits {
					class[conflictIdx] = v
					order.POrder[i] = u
					break
				}
			}
			earlier = s + sz
		}
	}
}
