// Package order implements the static vertex orderings and the greedy
// colour-class order used to seed and bound every CCO-family search
// (§4.C). Orderings are pure functions of a graph.Graph; the colour-class
// order operates on the bit-encoded substrate once a search has already
// re-encoded the graph in a chosen order.
package order

import (
	"sort"

	"github.com/booltime/parasols"
)

// Func is a static vertex ordering: a permutation mapping search index to
// original vertex id, order[i] == the vertex placed at search index i.
type Func func(g *graph.Graph) []graph.NI

// Degree orders vertices by non-increasing degree.
func Degree(g *graph.Graph) []graph.NI {
	order := identity(g.N())
	sort.SliceStable(order, func(i, j int) bool {
		return g.Degree(order[i]) > g.Degree(order[j])
	})
	return order
}

// exDegree is degree plus the sum of neighbour degrees (§4.C, GLOSSARY).
func exDegree(g *graph.Graph, v graph.NI) int {
	sum := g.Degree(v)
	for _, nb := range g.Neighbours(v) {
		sum += g.Degree(nb)
	}
	return sum
}

// ExDegree orders vertices by non-increasing ex-degree.
func ExDegree(g *graph.Graph) []graph.NI {
	order := identity(g.N())
	ex := make([]int, g.N())
	for i := range ex {
		ex[i] = exDegree(g, graph.NI(i))
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ex[order[i]] > ex[order[j]]
	})
	return order
}

// MinWidth computes the Matula-Beck degeneracy (min-width) ordering by
// repeatedly peeling the minimum-degree remaining vertex. The returned
// order places each peeled vertex immediately after the vertices peeled
// later (i.e. the last vertex peeled — the one with highest coreness —
// comes first), which is the orientation CCO expects: later search
// positions should be harder to extend, so they are visited (and coloured)
// first in the branching loop of §4.D.
func MinWidth(g *graph.Graph) []graph.NI {
	n := g.N()
	deg := make([]int, n)
	removed := make([]bool, n)
	for i := 0; i < n; i++ {
		deg[i] = g.Degree(graph.NI(i))
	}
	peeled := make([]graph.NI, 0, n)
	for len(peeled) < n {
		best, bestDeg := -1, n+1
		for v := 0; v < n; v++ {
			if !removed[v] && deg[v] < bestDeg {
				best, bestDeg = v, deg[v]
			}
		}
		removed[best] = true
		peeled = append(peeled, graph.NI(best))
		for _, nb := range g.Neighbours(graph.NI(best)) {
			if !removed[nb] {
				deg[nb]--
			}
		}
	}
	// reverse: last peeled first
	order := make([]graph.NI, n)
	for i, v := range peeled {
		order[n-1-i] = v
	}
	return order
}

// DynamicExDegree is like ExDegree, but ex-degree is recomputed against the
// remaining (not yet placed) vertices after every peel, following the same
// peeling discipline as MinWidth but ranking by ex-degree instead of raw
// degree.
func DynamicExDegree(g *graph.Graph) []graph.NI {
	n := g.N()
	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}
	order := make([]graph.NI, 0, n)
	for len(order) < n {
		best, bestEx := -1, -1
		for v := 0; v < n; v++ {
			if !remaining[v] {
				continue
			}
			ex := 0
			for _, nb := range g.Neighbours(graph.NI(v)) {
				if remaining[nb] {
					ex++
				}
			}
			ex += countRemaining(g, graph.NI(v), remaining)
			if ex > bestEx {
				best, bestEx = v, ex
			}
		}
		remaining[best] = false
		order = append(order, graph.NI(best))
	}
	return order
}

func countRemaining(g *graph.Graph, v graph.NI, remaining []bool) int {
	sum := 0
	for _, nb := range g.Neighbours(v) {
		if !remaining[nb] {
			continue
		}
		d := 0
		for _, nb2 := range g.Neighbours(nb) {
			if remaining[nb2] {
				d++
			}
		}
		sum += d
	}
	return sum
}

func identity(n int) []graph.NI {
	order := make([]graph.NI, n)
	for i := range order {
		order[i] = graph.NI(i)
	}
	return order
}
