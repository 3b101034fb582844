package mergeclique

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
)

// house builds K4 {0,1,2,3} with two pendant triangle-closing vertices
// 4 (adjacent to 0,1) and 5 (adjacent to 2,3), so that {0,1,4} and {2,3,5}
// are cliques that do not overlap but whose union is not itself a clique.
func house() *graph.Graph {
	g := graph.New(6)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(0, 3)
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	g.AddEdge(0, 4)
	g.AddEdge(1, 4)
	g.AddEdge(2, 5)
	g.AddEdge(3, 5)
	return g
}

func TestMergeOfOverlappingCliquesIsCliqueAtLeastAsLargeAsEither(t *testing.T) {
	g := house()
	a := []graph.NI{0, 1, 4}
	b := []graph.NI{0, 1, 2, 3}
	result := Merge(a, b, g)

	ok, _ := isClique(result, g)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(result), len(b))
}

func TestMergeFallsBackToLargerWhenUnionNotAClique(t *testing.T) {
	g := house()
	a := []graph.NI{0, 1, 4}
	b := []graph.NI{2, 3, 5}
	result := Merge(a, b, g)

	ok, _ := isClique(result, g)
	require.True(t, ok)
	assert.Equal(t, 3, len(result))
}

func TestMergeHandlesEmptyInput(t *testing.T) {
	g := house()
	b := []graph.NI{0, 1, 2, 3}
	assert.ElementsMatch(t, b, Merge(nil, b, g))
	assert.ElementsMatch(t, b, Merge(b, nil, g))
}

func TestMergeWithoutGraphReturnsLarger(t *testing.T) {
	a := []graph.NI{0, 1}
	b := []graph.NI{0, 1, 2}
	assert.ElementsMatch(t, b, Merge(a, b, nil))
}

func isClique(members []graph.NI, g *graph.Graph) (bool, [2]graph.NI) {
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			if !g.HasEdge(members[i], members[j]) {
				return false, [2]graph.NI{members[i], members[j]}
			}
		}
	}
	return true, [2]graph.NI{}
}
