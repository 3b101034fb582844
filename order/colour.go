package order

import "github.com/booltime/parasols/bitset"

// ColourOrder is the colour record of §3: two parallel arrays of length
// |P|. POrder[i] is the search-index vertex placed at position i; Colours[i]
// is a monotonically non-decreasing upper bound on the size of a clique
// extensible using {POrder[0..i]}.
type ColourOrder struct {
	POrder  []int
	Colours []int
}

// GreedyColourOrder computes the colour record for a candidate set p,
// following the procedure of §4.C: repeatedly open a new colour class,
// greedily fill it from the lowest-index remaining candidate and everyone
// in the remaining set not adjacent to anything already placed in the
// class, then append the whole class to POrder with its colour number.
//
// The result satisfies Colours[len(p)-1] >= chromatic number of g[p]: it is
// a valid (if not optimal) greedy colouring, so it is always a sound upper
// bound on clique size within p.
func GreedyColourOrder(g *bitset.FixedBitGraph, p *bitset.FixedBitSet) ColourOrder {
	n := p.PopCount()
	result := ColourOrder{
		POrder:  make([]int, 0, n),
		Colours: make([]int, 0, n),
	}
	remaining := p.Clone()
	colour := 0
	for !remaining.AllZeros() {
		colour++
		class := remaining.Clone()
		// class starts as everything still available; we narrow it down to
		// a mutually non-adjacent set by repeatedly intersecting with the
		// complement of each chosen vertex's neighbourhood.
		chosen := make([]int, 0)
		avail := class
		for !avail.AllZeros() {
			v, _ := avail.FirstSet()
			chosen = append(chosen, v)
			avail.Unset(v)
			g.IntersectWithRowComplement(v, &avail)
		}
		for _, v := range chosen {
			remaining.Unset(v)
			result.POrder = append(result.POrder, v)
			result.Colours = append(result.Colours, colour)
		}
	}
	return result
}
