package bitset

// FixedBitGraph is an n x n adjacency matrix over a fixed-capacity bit
// substrate: n rows, each a FixedBitSet, plus a per-vertex degree cache
// (§3 "FixedBitGraph[W]"). Symmetry is caller-maintained: AddEdge sets both
// (u,v) and (v,u), but nothing stops a caller from setting only one
// direction if that is ever useful for a one-off internal structure (it is
// not, for any solver in this repository).
type FixedBitGraph struct {
	words int
	n     int
	rows  []FixedBitSet
	deg   []int
}

// NewFixedBitGraph allocates an n-vertex graph backed by words-word rows.
func NewFixedBitGraph(words, n int) *FixedBitGraph {
	g := &FixedBitGraph{
		words: words,
		n:     n,
		rows:  make([]FixedBitSet, n),
		deg:   make([]int, n),
	}
	for i := range g.rows {
		g.rows[i] = New(words, n)
	}
	return g
}

// N returns the number of vertices.
func (g *FixedBitGraph) N() int { return g.n }

// Words returns the word capacity rows are allocated with, so that callers
// building scratch FixedBitSets of their own size them consistently.
func (g *FixedBitGraph) Words() int { return g.words }

// AddEdge records the undirected edge (u, v); u == v is a no-op (no
// self-loops are created unless a caller explicitly wants them, per §4.A).
func (g *FixedBitGraph) AddEdge(u, v int) {
	if u == v {
		return
	}
	if !g.rows[u].Test(v) {
		g.rows[u].Set(v)
		g.deg[u]++
	}
	if !g.rows[v].Test(u) {
		g.rows[v].Set(u)
		g.deg[v]++
	}
}

// Adjacent reports whether u and v are adjacent.
func (g *FixedBitGraph) Adjacent(u, v int) bool { return g.rows[u].Test(v) }

// Degree returns the cached degree of v.
func (g *FixedBitGraph) Degree(v int) int { return g.deg[v] }

// Neighbourhood returns v's adjacency row. Callers must not mutate it;
// Clone first if a mutable copy is needed.
func (g *FixedBitGraph) Neighbourhood(v int) *FixedBitSet { return &g.rows[v] }

// IntersectWithRow intersects s with v's adjacency row in place.
func (g *FixedBitGraph) IntersectWithRow(v int, s *FixedBitSet) {
	s.Intersect(&g.rows[v])
}

// IntersectWithRowComplement intersects s with the complement of v's
// adjacency row in place, restricted to the active length, and clears v
// itself from s. The stored graph is irreflexive, so v's own bit in its row
// is 0 and the complement alone would keep v; the explicit Unset removes it.
// See DESIGN.md.
func (g *FixedBitGraph) IntersectWithRowComplement(v int, s *FixedBitSet) {
	s.IntersectComplement(&g.rows[v])
	s.Unset(v)
}
