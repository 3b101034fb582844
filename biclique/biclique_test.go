package biclique

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
)

// k33 returns a complete bipartite graph K(3,3) on vertices {0,1,2} x
// {3,4,5}.
func k33() *graph.Graph {
	g := graph.New(6)
	for u := 0; u < 3; u++ {
		for v := 3; v < 6; v++ {
			g.AddEdge(graph.NI(u), graph.NI(v))
		}
	}
	return g
}

func assertIsBiclique(t *testing.T, g *graph.Graph, a, b []graph.NI) {
	t.Helper()
	for _, u := range a {
		for _, v := range b {
			require.True(t, g.HasEdge(u, v))
		}
	}
}

func TestSolveFindsFullK33(t *testing.T) {
	g := k33()
	res, err := Solve(g, Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Size)
	assert.Len(t, res.MembersA, 3)
	assert.Len(t, res.MembersB, 3)
	assertIsBiclique(t, g, res.MembersA, res.MembersB)
}

func TestSolveOnEmptyGraphFindsNothing(t *testing.T) {
	g := graph.New(5)
	res, err := Solve(g, Params{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Size)
}

func TestSolveRespectsInitialBound(t *testing.T) {
	g := k33()
	res, err := Solve(g, Params{InitialBound: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Size)
	assert.Nil(t, res.MembersA)
}

func TestSolveStopAfterFindingHaltsEarly(t *testing.T) {
	g := k33()
	res, err := Solve(g, Params{StopAfterFinding: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Size, 1)
}

func TestSolveBreakABSymmetryStillFindsOptimum(t *testing.T) {
	g := k33()
	res, err := Solve(g, Params{BreakABSymmetry: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Size)
	assertIsBiclique(t, g, res.MembersA, res.MembersB)
}
