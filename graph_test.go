package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func path5() *Graph {
	g := New(5)
	for i := NI(0); i < 4; i++ {
		g.AddEdge(i, i+1)
	}
	return g
}

func TestSimple(t *testing.T) {
	g := path5()
	ok, _ := g.Simple()
	assert.True(t, ok)
}

func TestComplementInvolution(t *testing.T) {
	g := path5()
	cc := g.Complement().Complement()
	require.Equal(t, g.N(), cc.N())
	for u := NI(0); u < 5; u++ {
		for v := NI(0); v < 5; v++ {
			assert.Equalf(t, g.HasEdge(u, v), cc.HasEdge(u, v), "edge (%d,%d)", u, v)
		}
	}
}

func TestPowerOneIsIdentity(t *testing.T) {
	g := path5()
	p1 := g.Power(1)
	for u := NI(0); u < 5; u++ {
		for v := NI(0); v < 5; v++ {
			assert.Equalf(t, g.HasEdge(u, v), p1.HasEdge(u, v), "edge (%d,%d)", u, v)
		}
	}
}

func TestPowerTwoReachesDistanceTwo(t *testing.T) {
	g := path5()
	p2 := g.Power(2)
	assert.True(t, p2.HasEdge(0, 2))
	assert.False(t, p2.HasEdge(0, 3))
}

func TestComplementOfCompleteIsEdgeless(t *testing.T) {
	g := New(4)
	for i := NI(0); i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			g.AddEdge(i, j)
		}
	}
	c := g.Complement()
	for i := NI(0); i < 4; i++ {
		assert.Equal(t, 0, c.Degree(i))
	}
}
