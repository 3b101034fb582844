package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/bitset"
)

func petersen() *graph.Graph {
	// Petersen graph: outer 5-cycle 0-4, inner 5-cycle (pentagram) 5-9,
	// spokes i -- i+5.
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

func isPermutation(t *testing.T, n int, order []graph.NI) {
	t.Helper()
	seen := make([]bool, n)
	for _, v := range order {
		require.False(t, seen[v])
		seen[v] = true
	}
	for _, s := range seen {
		require.True(t, s)
	}
}

func TestOrderingsArePermutations(t *testing.T) {
	g := petersen()
	isPermutation(t, 10, Degree(g))
	isPermutation(t, 10, ExDegree(g))
	isPermutation(t, 10, MinWidth(g))
	isPermutation(t, 10, DynamicExDegree(g))
}

func buildBitGraph(g *graph.Graph, order []graph.NI) *bitset.FixedBitGraph {
	n := g.N()
	words, err := bitset.Capacity(n)
	if err != nil {
		panic(err)
	}
	pos := make([]int, n)
	for i, v := range order {
		pos[v] = i
	}
	bg := bitset.NewFixedBitGraph(words, n)
	for i := 0; i < n; i++ {
		for _, nb := range g.Neighbours(order[i]) {
			bg.AddEdge(i, pos[nb])
		}
	}
	return bg
}

func TestGreedyColourOrderIsValidBound(t *testing.T) {
	g := petersen()
	order := Degree(g)
	bg := buildBitGraph(g, order)
	p := bitset.New(bg.Words(), 10)
	p.SetAll()
	co := GreedyColourOrder(bg, &p)
	require.Len(t, co.POrder, 10)
	require.Len(t, co.Colours, 10)
	for i := 1; i < len(co.Colours); i++ {
		assert.LessOrEqual(t, co.Colours[i-1], co.Colours[i])
	}
	// Petersen's chromatic number is 3; the greedy bound must be >= that.
	assert.GreaterOrEqual(t, co.Colours[len(co.Colours)-1], 3)
	// Every colour class must be an independent set.
	classStart := map[int]int{}
	for i, c := range co.Colours {
		if _, ok := classStart[c]; !ok {
			classStart[c] = i
		}
	}
	for i := range co.POrder {
		for j := i + 1; j < len(co.POrder); j++ {
			if co.Colours[i] == co.Colours[j] {
				assert.Falsef(t, bg.Adjacent(co.POrder[i], co.POrder[j]),
					"colour class %d contains adjacent vertices", co.Colours[i])
			}
		}
	}
}

func TestPermutationVariantsPreserveBound(t *testing.T) {
	g := petersen()
	order := Degree(g)
	bg := buildBitGraph(g, order)
	p := bitset.New(bg.Words(), 10)
	p.SetAll()
	base := GreedyColourOrder(bg, &p)
	baseBound := base.Colours[len(base.Colours)-1]

	for _, perm := range []Permutation{PermNone, PermDefer1, PermSort, PermRepairAll, PermRepairSelected, PermFast} {
		co := GreedyColourOrder(bg, &p)
		Apply(perm, bg, &co)
		require.Len(t, co.POrder, 10)
		assert.GreaterOrEqual(t, co.Colours[len(co.Colours)-1], 3)
		assert.Equal(t, baseBound, co.Colours[len(co.Colours)-1])
		isPermutation(t, 10, niSlice(co.POrder))
	}
}

func niSlice(in []int) []graph.NI {
	out := make([]graph.NI, len(in))
	for i, v := range in {
		out[i] = graph.NI(v)
	}
	return out
}
