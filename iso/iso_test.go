package iso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
)

// triangle returns a complete graph on 3 vertices.
func triangle() *graph.Graph {
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(0, 2)
	return g
}

// assertValidMapping checks that mapping preserves every pattern edge.
func assertValidMapping(t *testing.T, pattern, target *graph.Graph, mapping []graph.NI) {
	t.Helper()
	require.Len(t, mapping, pattern.N())
	seen := make(map[graph.NI]bool, len(mapping))
	for v := 0; v < pattern.N(); v++ {
		f := mapping[v]
		require.False(t, seen[f], "target vertex %d used twice", f)
		seen[f] = true
		for _, nb := range pattern.Neighbours(graph.NI(v)) {
			require.True(t, target.HasEdge(f, mapping[nb]), "edge (%d,%d) not preserved", v, nb)
		}
	}
}

func TestSolveFindsTriangleInLargerTarget(t *testing.T) {
	pattern := triangle()

	// A 4-cycle with one diagonal (0-1-2-3-0 plus 0-2) contains a triangle
	// on {0,1,2}.
	target := graph.New(4)
	target.AddEdge(0, 1)
	target.AddEdge(1, 2)
	target.AddEdge(2, 3)
	target.AddEdge(3, 0)
	target.AddEdge(0, 2)

	res, err := Solve(pattern, target, Params{})
	require.NoError(t, err)
	require.True(t, res.Found)
	assertValidMapping(t, pattern, target, res.Mapping)
}

func TestSolveFindsNoMappingWhenNoneExists(t *testing.T) {
	pattern := triangle()

	// A 4-cycle has no triangle.
	target := graph.New(4)
	target.AddEdge(0, 1)
	target.AddEdge(1, 2)
	target.AddEdge(2, 3)
	target.AddEdge(3, 0)

	res, err := Solve(pattern, target, Params{})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSolveInducedRejectsExtraEdges(t *testing.T) {
	// Pattern is a path 0-1-2 (no edge 0-2).
	pattern := graph.New(3)
	pattern.AddEdge(0, 1)
	pattern.AddEdge(1, 2)

	// Target is a triangle: any embedding of the path also has the 0-2
	// edge present, so no induced (path-preserving) mapping exists.
	target := triangle()

	res, err := Solve(pattern, target, Params{Induced: true})
	require.NoError(t, err)
	assert.False(t, res.Found)

	// Without Induced, the same mapping is a valid (non-induced) embedding.
	res2, err := Solve(pattern, target, Params{})
	require.NoError(t, err)
	require.True(t, res2.Found)
	assertValidMapping(t, pattern, target, res2.Mapping)
}

func TestSolveRejectsWhenPatternLargerThanTarget(t *testing.T) {
	pattern := triangle()
	target := graph.New(2)
	res, err := Solve(pattern, target, Params{})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestProbeReportsLimitHitOnTinyBudget(t *testing.T) {
	pattern := triangle()
	target := graph.New(4)
	target.AddEdge(0, 1)
	target.AddEdge(1, 2)
	target.AddEdge(2, 3)
	target.AddEdge(3, 0)
	target.AddEdge(0, 2)

	res, err := Probe(pattern, target, 1)
	require.NoError(t, err)
	assert.True(t, res.LimitHit)
}

func TestProbeFindsEmbeddingWithGenerousBudget(t *testing.T) {
	pattern := triangle()
	target := graph.New(4)
	target.AddEdge(0, 1)
	target.AddEdge(1, 2)
	target.AddEdge(2, 3)
	target.AddEdge(3, 0)
	target.AddEdge(0, 2)

	res, err := Probe(pattern, target, 10000)
	require.NoError(t, err)
	require.False(t, res.LimitHit)
	require.True(t, res.Found)
	assertValidMapping(t, pattern, target, res.Mapping)
}

func TestAllDifferentPruneDetectsHallViolation(t *testing.T) {
	pattern := graph.New(3)
	target := graph.New(3)
	s, err := newSearch(pattern, target, Params{})
	require.NoError(t, err)

	// Force three unassigned domains to share only two distinct values
	// between them: no matching can saturate all three, a violation a
	// per-domain emptiness check alone cannot see.
	s.domains[0].ClearAll()
	s.domains[0].Set(0)
	s.domains[1].ClearAll()
	s.domains[1].Set(0)
	s.domains[1].Set(1)
	s.domains[2].ClearAll()
	s.domains[2].Set(0)
	s.domains[2].Set(1)

	ok, reason := s.allDifferentPrune(0)
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestAllDifferentPrunePrunesValuesOffEveryAlternatingPath(t *testing.T) {
	pattern := graph.New(2)
	target := graph.New(4)
	s, err := newSearch(pattern, target, Params{})
	require.NoError(t, err)

	s.domains[0].ClearAll()
	s.domains[0].Set(0)
	s.domains[1].ClearAll()
	s.domains[1].Set(0)
	s.domains[1].Set(1)

	ok, _ := s.allDifferentPrune(0)
	require.True(t, ok)
	assert.True(t, s.domains[0].Test(0))
	assert.True(t, s.domains[1].Test(1))
	assert.False(t, s.domains[1].Test(0), "value 0 is only reachable through vertex 0's singleton domain")
}

func TestComputeDominationFindsTwinsWithoutCorruptingState(t *testing.T) {
	// 0 and 1 are twins (both adjacent only to 2 and 3); 4 is isolated and
	// must not leave any residue in vertex 0's working neighbour set that
	// would affect later comparisons for this vertex.
	pattern := graph.New(5)
	pattern.AddEdge(0, 2)
	pattern.AddEdge(0, 3)
	pattern.AddEdge(1, 2)
	pattern.AddEdge(1, 3)

	s, err := newSearch(pattern, pattern, Params{})
	require.NoError(t, err)

	assert.Contains(t, s.patternDominated[0], 1)
	assert.Contains(t, s.patternDominated[1], 0)
	assert.NotContains(t, s.patternDominated[0], 4)
	assert.NotContains(t, s.patternDominated[0], 2)
}

func TestSolveWithWalkAuxiliaryLevelsStillFindsValidMapping(t *testing.T) {
	pattern := triangle()
	target := graph.New(4)
	target.AddEdge(0, 1)
	target.AddEdge(1, 2)
	target.AddEdge(2, 3)
	target.AddEdge(3, 0)
	target.AddEdge(0, 2)

	res, err := Solve(pattern, target, Params{AuxLevels: 1, Walk3Levels: 1, Walk4Levels: 1})
	require.NoError(t, err)
	require.True(t, res.Found)
	assertValidMapping(t, pattern, target, res.Mapping)
}
