package clique

import "github.com/booltime/parasols/bitset"
import "github.com/booltime/parasols/order"

// Hooks is the strategy interface the shared expansion routine is
// parameterised on (§9 design note: "curiously-recurring template base for
// solver composition", re-expressed here as a plain interface). A
// sequential solver (this package's Solve) and the parallel driver
// (package parallel) each supply their own Hooks: the sequential one tracks
// a local best and calls a user callback; the parallel one reads/writes a
// shared atomic incumbent and publishes/consumes subproblem prefixes.
type Hooks interface {
	// IncrementNodes records that one more node was visited.
	IncrementNodes()
	// BestAnywhere returns the best clique size known anywhere (locally,
	// or globally for a parallel search).
	BestAnywhere() int
	// PotentialNewBest is called when a branch's candidate set P has gone
	// empty, i.e. C cannot be extended further within this branch: C is a
	// maximal clique along this path and a candidate for a new incumbent.
	PotentialNewBest(c []int)
	// Skip is consulted once per node, before the branching loop, and
	// returns how many of the highest-index candidates to reject without
	// branching (the parallel driver's forced subproblem prefix), plus
	// whether the node should stop after doing so instead of continuing
	// normal branching.
	Skip(depth int) (skip int, stop bool)
	// Recurse wraps a single recursive descent (the "take v" branch): skip
	// is how many higher-ranked candidates were rejected at this depth
	// before the one now being taken (depth's position in a Subproblem's
	// offsets, see package parallel), and call invokes the descent,
	// returning whether sibling branches at this position may still be
	// explored. The sequential hooks just invoke call(); the parallel
	// driver brackets it with publishing and consuming a steal point.
	Recurse(depth, skip int, call func() bool) bool
	// Aborted reports whether the search should return immediately.
	Aborted() bool
}

// Engine runs the §4.D branch-and-bound expansion against a fixed bit
// graph, under a chosen permutation and inference policy, invoking Hooks at
// the points the design note's six-hook contract specifies.
type Engine struct {
	BG      *bitset.FixedBitGraph
	Perm    order.Permutation
	Inferer Inferer
	Hooks   Hooks
}

// Expand is the recursive core of §4.D: for each candidate at the current
// node, from highest colour position down to lowest, prune on the colour
// bound, then either take it (recursing into P ∩ N(v)) or reject it
// (propagating domination inference). It returns false if its own
// branching loop was cut short, by a forced Skip stop or by a Recurse that
// reported one of this node's positions stolen.
func (e *Engine) Expand(c []int, p bitset.FixedBitSet, co order.ColourOrder) bool {
	e.Hooks.IncrementNodes()

	skip, stop := e.Hooks.Skip(len(c))
	keepGoing := !stop

	for n := len(co.POrder) - 1; n >= 0; n-- {
		best := e.Hooks.BestAnywhere()
		if len(c)+co.Colours[n] <= best || e.Hooks.Aborted() {
			return keepGoing
		}

		v := co.POrder[n]

		if skip > 0 || e.Inferer.Skip(v, &p) {
			if skip > 0 {
				skip--
			}
			p.Unset(v)
			e.Inferer.PropagateNo(v, &p)
			continue
		}

		c = append(c, v)
		newP := p.Clone()
		e.BG.IntersectWithRow(v, &newP)

		if newP.AllZeros() {
			e.Hooks.PotentialNewBest(c)
		} else {
			newCo := order.GreedyColourOrder(e.BG, &newP)
			order.Apply(e.Perm, e.BG, &newCo)
			rank := len(co.POrder) - 1 - n
			keepGoing = e.Hooks.Recurse(len(c), rank, func() bool {
				return e.Expand(c, newP, newCo)
			}) && keepGoing
		}
		c = c[:len(c)-1]

		p.Unset(v)
		e.Inferer.PropagateNo(v, &p)

		if !keepGoing {
			break
		}
	}
	return keepGoing
}

