// Package biclique implements the two-sided CCO search for maximum balanced
// biclique (§4.G): two growing sides Ca/Cb and two candidate sets Pa/Pb,
// with the roles of A and B swapped on every recursive descent so the same
// expansion routine drives both sides.
package biclique

import (
	"math"
	"time"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/bitset"
	"github.com/booltime/parasols/order"
)

// Params are the parameters of the biclique search's public contract,
// mirroring clique.Params where the same concept applies.
type Params struct {
	InitialBound int
	StopAfterFinding int
	// BreakABSymmetry skips re-trying {v} as a singleton B side once B is
	// still empty and v has already been rejected for A, since a biclique
	// found with the sides swapped is reported identically either way.
	BreakABSymmetry bool
	OnIncumbent func(size int, trace []int)
	Abort func() bool
	Order order.Func
}

func (p *Params) stopThreshold() int {
	if p.StopAfterFinding <= 0 {
		return math.MaxInt
	}
	return p.StopAfterFinding
}

func (p *Params) order() order.Func {
	if p.Order != nil {
		return p.Order
	}
	return order.Degree
}

func (p *Params) aborted() bool { return p.Abort != nil && p.Abort() }

// Result is the §3 "Result records" contract for maximum balanced biclique:
// a size-by-size pair of member sets with |MembersA| == |MembersB| == Size.
// If nothing larger than InitialBound is found, Size is InitialBound and
// both member sets are nil.
type Result struct {
	Size    int
	MembersA []graph.NI
	MembersB []graph.NI
	Nodes   int64
	Aborted bool
	Runtime time.Duration
}

// Solve runs the sequential two-sided CCO search for the largest k such
// that some Ca, Cb of size k have every A-vertex adjacent to every B-vertex
// and no edge inside either side (an induced complete bipartite subgraph).
func Solve(g *graph.Graph, params Params) (Result, error) {
	start := time.Now()
	n := g.N()
	words, err := bitset.Capacity(n)
	if err != nil {
		return Result{}, err
	}

	vertexOrder := params.order()(g)
	bg := bitset.NewFixedBitGraph(words, n)
	pos := make([]int, n)
	for i, v := range vertexOrder {
		pos[int(v)] = i
	}
	for i := 0; i < n; i++ {
		for _, nb := range g.Neighbours(vertexOrder[i]) {
			bg.AddEdge(i, pos[int(nb)])
		}
	}

	ca := bitset.New(words, n)
	cb := bitset.New(words, n)
	pa := bitset.New(words, n)
	pa.SetAll()
	pb := bitset.New(words, n)
	pb.SetAll()

	s := &search{
		g: bg, params: &params, order: vertexOrder,
		best:       params.InitialBound,
		result:     Result{Size: params.InitialBound},
	}
	s.expand(ca, cb, pa, pb)

	s.result.Nodes = s.nodes
	s.result.Runtime = time.Since(start)
	return s.result, nil
}

type search struct {
	g          *bitset.FixedBitGraph
	params     *Params
	order      []graph.NI
	best       int
	nodes      int64
	result     Result
}

func (s *search) stopThresh() int { return s.params.stopThreshold() }

// expand mirrors original_source/max_biclique/cc_max_biclique.cc's expand:
// ca/cb are the two growing sides, pa/pb their candidate sets. Every
// descent swaps the roles of A and B, so one routine explores both sides of
// the biclique.
func (s *search) expand(ca, cb, pa, pb bitset.FixedBitSet) {
	s.nodes++

	paOrder := order.GreedyColourOrder(s.g, &pa)

	caCount := ca.PopCount()
	cbCount := cb.PopCount()
	pbCount := pb.PopCount()

	for n := len(paOrder.POrder) - 1; n >= 0; n-- {
		if s.best >= s.stopThresh() || s.params.aborted() {
			s.result.Aborted = true
			return
		}
		if paOrder.Colours[n]+caCount <= s.best {
			return
		}
		if pbCount+cbCount <= s.best {
			return
		}

		v := paOrder.POrder[n]

		ca.Set(v)
		caCount++
		pa.Unset(v)

		newPa := pa.Clone()
		newPb := pb.Clone()
		s.g.IntersectWithRowComplement(v, &newPa)
		s.g.IntersectWithRow(v, &newPb)

		if caCount == cbCount && caCount > s.best {
			s.best = caCount
			s.result.Size = caCount
			s.result.MembersA = depermute(s.order, &ca)
			s.result.MembersB = depermute(s.order, &cb)
			if s.params.OnIncumbent != nil {
				s.params.OnIncumbent(caCount, nil)
			}
		}

		if !newPb.AllZeros() {
			// swap A and B for the recursive descent
			s.expand(cb, ca, newPb, newPa)
		}

		ca.Unset(v)
		caCount--

		if s.params.BreakABSymmetry && cb.AllZeros() {
			pb.Unset(v)
			pbCount = pb.PopCount()
		}
	}
}

func depermute(order []graph.NI, s *bitset.FixedBitSet) []graph.NI {
	var out []graph.NI
	s.IterateOnes(func(i int) bool {
		out = append(out, order[i])
		return true
	})
	return out
}
