// Package labelled implements the labelled-clique core (§4.I): as clique's
// CCO, but every vertex carries a label, and a candidate clique accumulates
// the set of distinct labels used by its members. The objective is
// lexicographic: maximise clique size first, minimise the accumulated label
// set's size second. Solve runs the two-pass optimality proof spec.md
// describes: pass one finds the best size (any cost), pass two re-searches
// bounded to exactly that size to find its minimum cost.
//
// Labels are represented as a 64-bit mask (each vertex's Label is a bit
// position in [0,64)), the same fixed-capacity discipline package bitset
// uses for vertex sets: a label-set popcount is then one machine
// instruction instead of a map traversal. Instances needing more than 64
// distinct labels are outside this package's scope.
package labelled

import (
	"math"
	"math/bits"
	"time"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/bitset"
	"github.com/booltime/parasols/order"
	"github.com/booltime/parasols/parallel"
)

// Params mirrors clique.Params for the parts that make sense for a
// two-objective search; there is no merge policy (§4.F's incumbent merge is
// specific to plain clique) and no inference policy (domination inference
// is sound for plain clique's single objective but the spec does not
// extend it to the lexicographic case, so this search relies solely on the
// colour-class bound).
type Params struct {
	InitialBound     int
	StopAfterFinding int
	OnIncumbent      func(size, cost int)
	Abort            func() bool
	Order            order.Func
	Permutation      order.Permutation
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

// Result is the §3 "Result records" contract for labelled clique.
type Result struct {
	Size    int
	Cost    int
	Members []graph.NI
	Nodes   int64
	Aborted bool
	Runtime time.Duration
}

// Solve runs the two-pass labelled-clique search. labels[v] is vertex v's
// label, a bit position in [0,64); Solve panics if any label is out of
// range. A graph beyond the capacity ladder is reported as an error
// (*bitset.ErrGraphTooBig), as clique.Build does.
func Solve(g *graph.Graph, labels []int, params Params) (Result, error) {
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
	labelBit := make([]uint64, n)
	for i, v := range vertexOrder {
		l := labels[int(v)]
		if l < 0 || l >= 64 {
			panic("labelled: label out of range [0,64)")
		}
		labelBit[i] = uint64(1) << uint(l)
	}

	rootP := bitset.New(words, n)
	rootP.SetAll()

	// Pass 1: find the best size, any cost.
	s1 := &search{bg: bg, params: &params, order: vertexOrder, labelBit: labelBit, stopThresh: params.stopThreshold()}
	s1.best = parallel.PackLabelled(params.InitialBound, 0)
	s1.result = Result{Size: params.InitialBound}
	co := order.GreedyColourOrder(bg, &rootP)
	order.Apply(params.Permutation, bg, &co)
	s1.expand(nil, rootP.Clone(), co, 0)

	// Pass 2: re-run bounded to exactly that size, to minimise cost.
	s2 := &search{
		bg: bg, params: &params, order: vertexOrder, labelBit: labelBit,
		stopThresh: params.stopThreshold(),
		exactSize:  s1.result.Size,
	}
	s2.result = s1.result
	if s1.result.Size > 0 {
		s2.best = parallel.PackLabelled(s1.result.Size-1, 0)
		co2 := order.GreedyColourOrder(bg, &rootP)
		order.Apply(params.Permutation, bg, &co2)
		s2.expand(nil, rootP.Clone(), co2, 0)
	}

	total := s1.nodes + s2.nodes
	s2.result.Nodes = total
	s2.result.Aborted = s1.result.Aborted || s2.result.Aborted
	s2.result.Runtime = time.Since(start)
	return s2.result, nil
}

type search struct {
	bg         *bitset.FixedBitGraph
	params     *Params
	order      []graph.NI
	labelBit   []uint64
	best       uint32
	nodes      int64
	result     Result
	stopThresh int
	// exactSize, when > 0, is pass two's requirement that only cliques of
	// exactly this size are considered (pass two searches to prove a cost
	// optimal for the size pass one already found, not to find a larger
	// size).
	exactSize int
}

func (s *search) expand(c []int, p bitset.FixedBitSet, co order.ColourOrder, labelMask uint64) {
	s.nodes++

	for n := len(co.POrder) - 1; n >= 0; n-- {
		size, _ := parallel.UnpackLabelled(s.best)
		if s.params.aborted() {
			s.result.Aborted = true
			return
		}
		if size >= s.stopThresh {
			return
		}
		if s.exactSize > 0 {
			// Pass two keeps exploring cliques of exactly exactSize after
			// finding one, so that a lower-cost one can still replace it.
			if len(c)+co.Colours[n] < s.exactSize {
				return
			}
		} else if len(c)+co.Colours[n] <= size {
			return
		}

		v := co.POrder[n]
		newMask := labelMask | s.labelBit[v]

		c = append(c, v)
		newP := p.Clone()
		s.bg.IntersectWithRow(v, &newP)

		if newP.AllZeros() {
			s.potentialNewBest(c, newMask)
		} else if s.exactSize == 0 || len(c) < s.exactSize {
			newCo := order.GreedyColourOrder(s.bg, &newP)
			order.Apply(s.params.Permutation, s.bg, &newCo)
			s.expand(c, newP, newCo, newMask)
		}
		c = c[:len(c)-1]
		p.Unset(v)
	}
}

func (s *search) potentialNewBest(c []int, labelMask uint64) {
	if s.exactSize > 0 && len(c) != s.exactSize {
		return
	}
	cost := bits.OnesCount64(labelMask)
	candidate := parallel.PackLabelled(len(c), cost)
	if candidate <= s.best {
		return
	}
	s.best = candidate
	s.result.Size = len(c)
	s.result.Cost = cost
	s.result.Members = translate(s.order, c)
	if s.params.OnIncumbent != nil {
		s.params.OnIncumbent(len(c), cost)
	}
}

func translate(order []graph.NI, c []int) []graph.NI {
	out := make([]graph.NI, len(c))
	for i, v := range c {
		out[i] = order[v]
	}
	return out
}
