// Package graph defines the plain graph data model shared by every solver
// in this repository: a simple, undirected, irreflexive adjacency list over
// zero-based node ids, with optional original vertex names carried through
// for reporting.
//
// This is deliberately the thinnest possible representation. Solvers never
// operate on it directly; each builds its own bit-encoded substrate (see
// package bitset) from a Graph plus a chosen vertex order.
package graph

import (
	"sort"
	"strconv"
)

// NI is a node id: a zero-based index into a Graph's adjacency list.
type NI int32

// Graph is a simple undirected graph: {0..N()-1} with symmetric, irreflexive
// adjacency. Once built with New or a parser, a Graph is never mutated
// except through AddEdge during construction.
type Graph struct {
	adj   [][]NI
	names []string // optional, parallel to adj; nil if unnamed
}

// New returns an edgeless graph on n nodes.
func New(n int) *Graph {
	return &Graph{adj: make([][]NI, n)}
}

// NewNamed returns an edgeless graph with the given vertex names.
func NewNamed(names []string) *Graph {
	return &Graph{adj: make([][]NI, len(names)), names: names}
}

// N returns the number of nodes.
func (g *Graph) N() int { return len(g.adj) }

// Name returns the original name of node v, or its decimal id if the graph
// carries no names.
func (g *Graph) Name(v NI) string {
	if g.names != nil && int(v) < len(g.names) {
		return g.names[v]
	}
	return strconv.Itoa(int(v))
}

// AddEdge adds the undirected edge (u, v). It is a no-op if the edge is
// already present or if u == v. Callers are responsible for not adding the
// same edge through both orderings more than once if they care about
// Degree staying in sync with a single insertion discipline; AddEdge itself
// never duplicates an edge it already recorded.
func (g *Graph) AddEdge(u, v NI) {
	if u == v {
		return
	}
	if !g.HasEdge(u, v) {
		g.adj[u] = append(g.adj[u], v)
	}
	if !g.HasEdge(v, u) {
		g.adj[v] = append(g.adj[v], u)
	}
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v NI) bool {
	for _, w := range g.adj[u] {
		if w == v {
			return true
		}
	}
	return false
}

// Neighbours returns the neighbour list of v. The caller must not modify it.
func (g *Graph) Neighbours(v NI) []NI { return g.adj[v] }

// Degree returns the number of neighbours of v.
func (g *Graph) Degree(v NI) int { return len(g.adj[v]) }

// Simple reports whether g has no loops or parallel arcs. On failure it
// returns a representative offending node.
func (g *Graph) Simple() (ok bool, n NI) {
	var t []int
	for i, nbs := range g.adj {
		t = t[:0]
		for _, v := range nbs {
			t = append(t, int(v))
		}
		sort.Ints(t)
		for j, v := range t {
			if v == i {
				return false, NI(i)
			}
			if j > 0 && v == t[j-1] {
				return false, NI(i)
			}
		}
	}
	return true, -1
}

// Complement returns the graph on the same node set with exactly the
// non-edges of g (and no self-loops). Names, if any, are preserved.
//
// complement(complement(g)) == g for every simple g (§8 round-trip
// property): Complement never introduces or removes a loop, and it flips
// every non-loop pair exactly once, so applying it twice restores the
// original adjacency.
func (g *Graph) Complement() *Graph {
	n := g.N()
	out := &Graph{adj: make([][]NI, n), names: g.names}
	for u := 0; u < n; u++ {
		adjacent := make(map[NI]bool, len(g.adj[u]))
		for _, v := range g.adj[u] {
			adjacent[v] = true
		}
		for v := 0; v < n; v++ {
			if v == u || adjacent[NI(v)] {
				continue
			}
			out.adj[u] = append(out.adj[u], NI(v))
		}
	}
	return out
}

// Power returns the k-th power of g: u and v are adjacent in the result iff
// they are distinct and connected by a path of at most k edges in g.
// Power(1) returns a graph identical to g (§8 round-trip property).
func (g *Graph) Power(k int) *Graph {
	n := g.N()
	out := &Graph{adj: make([][]NI, n), names: g.names}
	if k <= 0 {
		return out
	}
	for u := 0; u < n; u++ {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[u] = 0
		queue := []NI{NI(u)}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if dist[cur] >= k {
				continue
			}
			for _, nb := range g.adj[cur] {
				if dist[nb] == -1 {
					dist[nb] = dist[cur] + 1
					queue = append(queue, nb)
				}
			}
		}
		for v := 0; v < n; v++ {
			if v != u && dist[v] != -1 {
				out.adj[u] = append(out.adj[u], NI(v))
			}
		}
	}
	return out
}

