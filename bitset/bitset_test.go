package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityLadder(t *testing.T) {
	cases := []struct {
		n     int
		words int
	}{
		{0, 1},
		{1, 1},
		{64, 1},
		{65, 2},
		{128, 2},
		{129, 4},
	}
	for _, c := range cases {
		w, err := Capacity(c.n)
		require.NoError(t, err)
		assert.Equalf(t, c.words, w, "n=%d", c.n)
	}
}

func TestCapacityTooBig(t *testing.T) {
	_, err := Capacity(MaxCapacity + 1)
	require.Error(t, err)
	var tooBig *ErrGraphTooBig
	require.ErrorAs(t, err, &tooBig)
}

func TestUnionIdempotentCommutative(t *testing.T) {
	a := New(1, 10)
	b := New(1, 10)
	a.Set(1)
	a.Set(3)
	b.Set(3)
	b.Set(5)

	ab := a.Clone()
	ab.Union(&b)
	ba := b.Clone()
	ba.Union(&a)
	assert.True(t, ab.Equal(&ba))

	again := ab.Clone()
	again.Union(&ab)
	assert.True(t, again.Equal(&ab))
}

func TestIntersectIdempotentCommutative(t *testing.T) {
	a := New(1, 10)
	b := New(1, 10)
	a.Set(1)
	a.Set(3)
	b.Set(3)
	b.Set(5)

	ab := a.Clone()
	ab.Intersect(&b)
	ba := b.Clone()
	ba.Intersect(&a)
	assert.True(t, ab.Equal(&ba))

	again := ab.Clone()
	again.Intersect(&ab)
	assert.True(t, again.Equal(&ab))
}

func TestPopCountFirstLastSet(t *testing.T) {
	s := New(2, 100)
	s.Set(3)
	s.Set(70)
	s.Set(99)
	assert.Equal(t, 3, s.PopCount())
	first, ok := s.FirstSet()
	require.True(t, ok)
	assert.Equal(t, 3, first)
	last, ok := s.LastSet()
	require.True(t, ok)
	assert.Equal(t, 99, last)
}

func TestSetAllMasksActiveLength(t *testing.T) {
	s := New(1, 5)
	s.SetAll()
	assert.Equal(t, 5, s.PopCount())
	assert.False(t, s.Test(5))
}

func TestIterateOnesOrder(t *testing.T) {
	s := New(2, 100)
	for _, i := range []int{2, 10, 63, 64, 90} {
		s.Set(i)
	}
	var got []int
	s.IterateOnes(func(i int) bool {
		got = append(got, i)
		return true
	})
	assert.Equal(t, []int{2, 10, 63, 64, 90}, got)
}

func TestIterateOnesEarlyStop(t *testing.T) {
	s := New(1, 10)
	s.Set(1)
	s.Set(2)
	s.Set(3)
	var got []int
	completed := s.IterateOnes(func(i int) bool {
		got = append(got, i)
		return i != 2
	})
	assert.False(t, completed)
	assert.Equal(t, []int{1, 2}, got)
}

func TestFixedBitGraphAdjacency(t *testing.T) {
	g := NewFixedBitGraph(1, 4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	assert.True(t, g.Adjacent(0, 1))
	assert.True(t, g.Adjacent(1, 0))
	assert.False(t, g.Adjacent(0, 2))
	assert.Equal(t, 1, g.Degree(0))
	assert.Equal(t, 2, g.Degree(1))
}

func TestIntersectWithRowClearsNonNeighbours(t *testing.T) {
	g := NewFixedBitGraph(1, 5)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	s := New(1, 5)
	s.SetAll()
	g.IntersectWithRow(0, &s)
	assert.Equal(t, 2, s.PopCount())
	assert.True(t, s.Test(1))
	assert.True(t, s.Test(2))
	assert.False(t, s.Test(0))
}
