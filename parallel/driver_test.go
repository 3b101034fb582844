package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/clique"
)

func petersen() *graph.Graph {
	g := graph.New(10)
	for i := graph.NI(0); i < 5; i++ {
		g.AddEdge(i, (i+1)%5)
		g.AddEdge(i, i+5)
	}
	for i := graph.NI(0); i < 5; i++ {
		g.AddEdge(5+i, 5+(i+2)%5)
	}
	return g
}

func complete(n int) *graph.Graph {
	g := graph.New(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.AddEdge(graph.NI(i), graph.NI(j))
		}
	}
	return g
}

func assertIsClique(t *testing.T, g *graph.Graph, members []graph.NI) {
	t.Helper()
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			require.True(t, g.HasEdge(members[i], members[j]))
		}
	}
}

func TestDriverMatchesSequentialOnPetersen(t *testing.T) {
	g := petersen()
	d := NewDriver(4, 3)
	res, err := d.Run(g, clique.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Size)
	assertIsClique(t, g, res.Members)
	assert.Len(t, res.PerWorkerRuntime, 4)
}

func TestDriverFindsFullCliqueOnCompleteGraph(t *testing.T) {
	g := complete(7)
	d := NewDriver(3, 2)
	res, err := d.Run(g, clique.Params{})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Size)
	assertIsClique(t, g, res.Members)
}

func TestDriverSingleWorkerMatchesSequentialSolve(t *testing.T) {
	g := petersen()
	d := NewDriver(1, 1)
	res, err := d.Run(g, clique.Params{})
	require.NoError(t, err)

	want, err := clique.Solve(g, clique.Params{})
	require.NoError(t, err)
	assert.Equal(t, want.Size, res.Size)
}

func TestDriverStopAfterFindingHaltsAtThreshold(t *testing.T) {
	g := complete(10)
	d := NewDriver(4, 3)
	res, err := d.Run(g, clique.Params{StopAfterFinding: 3})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Size, 3)
}

func TestDriverSingleWorkerOnLargeQueueDoesNotDeadlock(t *testing.T) {
	g := complete(40)
	d := NewDriver(1, 4)
	res, err := d.Run(g, clique.Params{})
	require.NoError(t, err)
	assert.Equal(t, 40, res.Size)
}
