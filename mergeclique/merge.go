// Package mergeclique implements §4.F's incumbent merge: given two cliques
// found on different branches of a search, try to combine them into a
// single larger clique on the original graph instead of discarding the
// smaller one.
package mergeclique

import (
	"sort"

	"github.com/booltime/parasols"
)

// Merge computes a clique built from a ∪ b: if a ∪ b is itself a clique, it
// greedily extends it with every common neighbour that is adjacent to all
// members chosen so far, preferring higher-degree candidates first.
//
// If a ∪ b is not a clique (some pair in it is non-adjacent), Merge returns
// a copy of the larger of a and b unchanged, so |result| >= max(|a|, |b|)
// holds in both cases (the §4.F contract).
func Merge(a, b []graph.NI, g *graph.Graph) []graph.NI {
	if g == nil {
		return larger(a, b)
	}
	if len(a) == 0 {
		return append([]graph.NI(nil), b...)
	}
	if len(b) == 0 {
		return append([]graph.NI(nil), a...)
	}

	base := cliqueUnion(a, b, g)
	if len(base) < len(a) || len(base) < len(b) {
		return larger(a, b)
	}

	candidates := commonNeighbours(base, g)
	sort.Slice(candidates, func(i, j int) bool {
		return g.Degree(candidates[i]) > g.Degree(candidates[j])
	})

	result := append([]graph.NI(nil), base...)
	for _, v := range candidates {
		if adjacentToAll(v, result, g) {
			result = append(result, v)
		}
	}
	return result
}

// cliqueUnion returns a ∪ b if it forms a clique, else the empty slice.
func cliqueUnion(a, b []graph.NI, g *graph.Graph) []graph.NI {
	seen := make(map[graph.NI]bool, len(a)+len(b))
	union := make([]graph.NI, 0, len(a)+len(b))
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			union = append(union, v)
		}
	}
	for _, v := range b {
		if !seen[v] {
			seen[v] = true
			union = append(union, v)
		}
	}
	for i := range union {
		for j := i + 1; j < len(union); j++ {
			if !g.HasEdge(union[i], union[j]) {
				return nil
			}
		}
	}
	return union
}

// commonNeighbours returns every vertex outside clique adjacent to every
// member of clique.
func commonNeighbours(clique []graph.NI, g *graph.Graph) []graph.NI {
	in := make(map[graph.NI]bool, len(clique))
	for _, v := range clique {
		in[v] = true
	}
	var out []graph.NI
	for v := 0; v < g.N(); v++ {
		nv := graph.NI(v)
		if in[nv] {
			continue
		}
		if adjacentToAll(nv, clique, g) {
			out = append(out, nv)
		}
	}
	return out
}

func adjacentToAll(v graph.NI, members []graph.NI, g *graph.Graph) bool {
	for _, m := range members {
		if !g.HasEdge(v, m) {
			return false
		}
	}
	return true
}

func larger(a, b []graph.NI) []graph.NI {
	if len(a) >= len(b) {
		return append([]graph.NI(nil), a...)
	}
	return append([]graph.NI(nil), b...)
}
