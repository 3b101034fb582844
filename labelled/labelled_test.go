package labelled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
)

// k4 returns a complete graph on 4 vertices.
func k4() *graph.Graph {
	g := graph.New(4)
	for u := 0; u < 4; u++ {
		for v := u + 1; v < 4; v++ {
			g.AddEdge(graph.NI(u), graph.NI(v))
		}
	}
	return g
}

func TestSolvePrefersLowerCostAtEqualSize(t *testing.T) {
	g := k4()
	// Two 4-cliques exist (there's only one, the whole graph): labels
	// {0,0,1,1} so the optimal (and only) maximum clique has cost 2.
	labels := []int{0, 0, 1, 1}
	res, err := Solve(g, labels, Params{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Size)
	assert.Equal(t, 2, res.Cost)
}

func TestSolveFindsMinimalCostAmongEqualSizeCliques(t *testing.T) {
	// Two disjoint triangles {0,1,2} and {3,4,5}; triangle A uses 3
	// distinct labels, triangle B uses a single repeated label, so both
	// have size 3 but B has the lower cost.
	g := graph.New(6)
	for u := 0; u < 3; u++ {
		for v := u + 1; v < 3; v++ {
			g.AddEdge(graph.NI(u), graph.NI(v))
		}
	}
	for u := 3; u < 6; u++ {
		for v := u + 1; v < 6; v++ {
			g.AddEdge(graph.NI(u), graph.NI(v))
		}
	}
	labels := []int{0, 1, 2, 5, 5, 5}
	res, err := Solve(g, labels, Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Size)
	assert.Equal(t, 1, res.Cost)
}

func TestSolveOnEmptyGraphFindsSingletons(t *testing.T) {
	g := graph.New(3)
	res, err := Solve(g, []int{0, 1, 2}, Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Size)
	assert.Equal(t, 1, res.Cost)
}

func TestSolveRespectsInitialBound(t *testing.T) {
	g := k4()
	res, err := Solve(g, []int{0, 0, 0, 0}, Params{InitialBound: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Size)
}
