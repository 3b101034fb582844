package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
)

func TestErdosRenyiExtremesCompleteAndEmpty(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	full := ErdosRenyi(6, 1, r)
	for u := 0; u < 6; u++ {
		assert.Equal(t, 5, full.Degree(graph.NI(u)))
	}

	r2 := rand.New(rand.NewSource(1))
	empty := ErdosRenyi(6, 0, r2)
	for u := 0; u < 6; u++ {
		assert.Equal(t, 0, empty.Degree(graph.NI(u)))
	}
}

func TestGNMProducesExactEdgeCount(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	g, err := GNM(10, 15, 200, r)
	require.NoError(t, err)

	var edges int
	for u := 0; u < g.N(); u++ {
		for _, v := range g.Neighbours(graph.NI(u)) {
			if int(v) > u {
				edges++
			}
		}
	}
	assert.Equal(t, 15, edges)
}

func TestGNMFailsWhenDensityExceedsSimpleGraphBound(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	_, err := GNM(3, 10, 50, r)
	require.Error(t, err)
}

func TestEuclideanProducesRequestedEdgeCountAndPositions(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	g, pos, err := Euclidean(8, 10, 1.0, 500, r)
	require.NoError(t, err)
	assert.Len(t, pos, 8)

	var edges int
	for u := 0; u < g.N(); u++ {
		for _, v := range g.Neighbours(graph.NI(u)) {
			if int(v) > u {
				edges++
			}
		}
	}
	assert.Equal(t, 10, edges)
}

func TestKroneckerProducesSimpleGraphWithinScale(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	g := Kronecker(4, 2.0, r)
	assert.LessOrEqual(t, g.N(), 1<<4)
	for u := 0; u < g.N(); u++ {
		seen := make(map[graph.NI]bool)
		for _, v := range g.Neighbours(graph.NI(u)) {
			require.NotEqual(t, graph.NI(u), v, "self-loop")
			require.False(t, seen[v], "duplicate edge")
			seen[v] = true
		}
	}
}
