package clique

import (
	"time"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/bitset"
	"github.com/booltime/parasols/mergeclique"
	"github.com/booltime/parasols/order"
)

// Built is the product of bit-re-encoding a graph.Graph under a chosen
// vertex order: the inputs every CCO-family search (sequential or
// parallel) needs at its root, shared so package parallel does not have to
// duplicate this step per worker.
type Built struct {
	BG          *bitset.FixedBitGraph
	VertexOrder []graph.NI
	Inferer     Inferer
	RootP       bitset.FixedBitSet
	RootColour  order.ColourOrder
}

// Build re-encodes g under params' chosen static order into a bit graph,
// runs the inference policy's preprocessing pass, and computes the root
// candidate set and its greedy colouring.
func Build(g *graph.Graph, params *Params) (Built, error) {
	n := g.N()
	words, err := bitset.Capacity(n)
	if err != nil {
		params.logger().Error("graph exceeds capacity ladder: %v", err)
		return Built{}, err
	}
	params.logger().Debug("built bit graph: n=%d words=%d", n, words)

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

	inferer := newInferer(params.InferencePolicy)
	inferer.Preprocess(bg)

	p := bitset.New(words, n)
	p.SetAll()
	co := order.GreedyColourOrder(bg, &p)
	order.Apply(params.Permutation, bg, &co)

	return Built{BG: bg, VertexOrder: vertexOrder, Inferer: inferer, RootP: p, RootColour: co}, nil
}

// Translate maps search-index members back to original graph.NI ids using
// the order a Built was constructed with.
func (b Built) Translate(c []int) []graph.NI {
	out := make([]graph.NI, len(c))
	for i, v := range c {
		out[i] = b.VertexOrder[v]
	}
	return out
}

// Solve runs the sequential CCO search (§4.D's public contract).
//
// The search cannot fail on account of the input: if no clique larger than
// params.InitialBound exists, it returns that bound with an empty (or
// seeded) member set. It can only fail with *bitset.ErrGraphTooBig if g is
// larger than the supported capacity ladder.
func Solve(g *graph.Graph, params Params) (Result, error) {
	start := time.Now()

	built, err := Build(g, &params)
	if err != nil {
		return Result{}, err
	}

	h := &seqHooks{
		params:     &params,
		order:      built.VertexOrder,
		best:       params.InitialBound,
		result:     Result{Size: params.InitialBound},
		stopThresh: params.stopThreshold(),
	}

	engine := &Engine{BG: built.BG, Perm: params.Permutation, Inferer: built.Inferer, Hooks: h}
	engine.Expand(nil, built.RootP, built.RootColour)

	if params.Enumerate {
		h.result.Size = len(h.result.Members)
		h.result.EnumerationCount = h.enumCount
	} else {
		h.result.Size = h.best
	}
	h.result.Nodes = h.nodes
	h.result.Runtime = time.Since(start)
	return h.result, nil
}

// seqHooks is the sequential clique.Hooks implementation: a local best, a
// local node counter, and direct dispatch of the chosen merge policy.
type seqHooks struct {
	params     *Params
	order      []graph.NI
	best       int
	nodes      int64
	enumCount  int64
	result     Result
	previouses [][]graph.NI
	stopThresh int
}

func (h *seqHooks) IncrementNodes() { h.nodes++ }

func (h *seqHooks) BestAnywhere() int { return h.best }

func (h *seqHooks) Skip(int) (int, bool) { return 0, false }

func (h *seqHooks) Recurse(_, _ int, call func() bool) bool { return call() }

func (h *seqHooks) Aborted() bool {
	if h.best >= h.stopThresh {
		return true
	}
	if h.params.aborted() {
		h.result.Aborted = true
		return true
	}
	return false
}

func (h *seqHooks) PotentialNewBest(c []int) {
	switch h.params.MergePolicy {
	case MergeNone:
		if h.params.Enumerate {
			// Enumeration keeps the bound fed to the branching loop one
			// below the true incumbent size, so ties with the best-known
			// clique are not pruned away before they can be counted.
			switch {
			case len(c) > h.best+1:
				h.enumCount = 1
				h.best = len(c) - 1
				h.result.Members = h.translate(c)
				h.notify(len(c))
			case len(c) == h.best+1:
				h.enumCount++
				if h.result.Members == nil {
					h.result.Members = h.translate(c)
					h.notify(len(c))
				}
			}
			return
		}
		if len(c) > h.best {
			h.best = len(c)
			h.result.Members = h.translate(c)
			h.notify(len(c))
		}
	case MergePrevious:
		newMembers := h.translate(c)
		merged := mergeclique.Merge(h.result.Members, newMembers, h.params.OriginalGraph)
		if len(merged) > h.best {
			h.result.Members = merged
			h.best = len(merged)
			h.notify(h.best)
		}
	case MergeAll:
		newMembers := h.translate(c)
		if len(h.previouses) == 0 {
			h.previouses = append(h.previouses, newMembers)
			if len(newMembers) > h.best {
				h.result.Members = newMembers
				h.best = len(newMembers)
				h.notify(h.best)
			}
			return
		}
		for _, prior := range h.previouses {
			merged := mergeclique.Merge(prior, newMembers, h.params.OriginalGraph)
			if len(merged) > h.best {
				h.result.Members = merged
				h.best = len(merged)
				h.previouses = append(h.previouses, merged)
				h.notify(h.best)
			}
		}
		h.previouses = append(h.previouses, newMembers)
	}
}

func (h *seqHooks) translate(c []int) []graph.NI {
	out := make([]graph.NI, len(c))
	for i, v := range c {
		out[i] = h.order[v]
	}
	return out
}

func (h *seqHooks) notify(size int) {
	h.params.logger().Debug("incumbent improved: size=%d nodes=%d", size, h.nodes)
	if h.params.OnIncumbent != nil {
		h.params.OnIncumbent(size, nil)
	}
}
