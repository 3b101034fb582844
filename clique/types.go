// Package clique implements the sequential colour-ordered branch-and-bound
// search for maximum clique (§4.D, "CCO"): greedy colour-class ordering,
// pluggable permutation, inference and merge policies, and incremental-merge
// incumbent improvement. Package parallel wraps the same engine (see
// clique.Engine) to run it on multiple threads with a shared incumbent.
package clique

import (
	"math"
	"time"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/logx"
	"github.com/booltime/parasols/order"
)

// Inference selects a domination-inference policy (§4.D).
type Inference int

const (
	// InferenceNone performs no domination inference.
	InferenceNone Inference = iota
	// GlobalDomination precomputes, for each ordered pair (i,j), whether j
	// dominates i, and removes dominated vertices from P when their
	// dominator is rejected.
	GlobalDomination
	// GlobalDominationSkip is GlobalDomination plus: skip branching on any
	// v no longer present in P at the time it would be tried.
	GlobalDominationSkip
	// LazyGlobalDomination computes the domination relation on demand,
	// memoised, instead of precomputing the full O(n^2) table up front.
	LazyGlobalDomination
)

// Merge selects an incumbent-maintenance policy (§4.D, §4.F).
type Merge int

const (
	// MergeNone accepts a candidate iff its size exceeds the best.
	MergeNone Merge = iota
	// MergePrevious tries to extend prev ∪ new into a larger clique.
	MergePrevious
	// MergeAll maintains a history of incumbents and tries to merge each
	// new candidate with every prior incumbent.
	MergeAll
)

// Params are the parameters of §4.D's public contract.
type Params struct {
	// InitialBound seeds the incumbent; the search only records strictly
	// larger cliques.
	InitialBound int
	// StopAfterFinding, if > 0, causes the search to return as soon as the
	// incumbent reaches this size.
	StopAfterFinding int
	// Enumerate counts all maximum cliques instead of stopping at one.
	Enumerate bool
	// OnIncumbent, if set, is called every time the incumbent strictly
	// improves, with the new size. The trace argument is always nil.
	OnIncumbent func(size int, trace []int)
	// Abort, if set, is polled at every node; once it reports true the
	// search returns the best incumbent found so far with Result.Aborted
	// set.
	Abort func() bool
	// Order chooses the static vertex order. Defaults to order.Degree.
	Order order.Func
	// Permutation selects a colour-order permutation variant.
	Permutation order.Permutation
	// InferencePolicy selects a domination-inference policy.
	InferencePolicy Inference
	// MergePolicy selects an incumbent-merge policy.
	MergePolicy Merge
	// OriginalGraph is used only by the merge policy, to test adjacency on
	// original vertex ids. It must be set when MergePolicy != MergeNone.
	OriginalGraph *graph.Graph
	// Logger receives incumbent-improvement and setup events. Defaults to
	// logx.Null{}: the hot recursive path never logs regardless, so the
	// only cost of a real logger is one call per incumbent improvement.
	Logger logx.Logger
}

func (p *Params) logger() logx.Logger { return p.EffectiveLogger() }

// EffectiveLogger returns p.Logger, or logx.Null{} if unset, so package
// parallel (and any other caller outside this package) can log consistently
// with the sequential path without duplicating the nil check.
func (p *Params) EffectiveLogger() logx.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logx.Null{}
}

func (p *Params) stopThreshold() int { return p.StopThreshold() }

// StopThreshold returns the incumbent size at which the search should stop
// (math.MaxInt if StopAfterFinding is unset), exported so package parallel
// can apply the same bound across its shared incumbent.
func (p *Params) StopThreshold() int {
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

func (p *Params) aborted() bool {
	return p.Abort != nil && p.Abort()
}

// Result is the §3 "Result records" contract for max-clique.
type Result struct {
	Size             int
	Members          []graph.NI
	Nodes            int64
	Aborted          bool
	EnumerationCount int64
	Runtime          time.Duration
	PerWorkerRuntime []time.Duration
}
