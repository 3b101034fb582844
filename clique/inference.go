package clique

import "github.com/booltime/parasols/bitset"

// Inferer is the per-node inference hook of §4.D. Preprocess runs once,
// after the bit graph is built; PropagateNo runs every time a vertex is
// rejected (the "not take v" step); Skip decides, before branching on v,
// whether it should be skipped entirely.
type Inferer interface {
	Preprocess(g *bitset.FixedBitGraph)
	PropagateNo(v int, p *bitset.FixedBitSet)
	Skip(v int, p *bitset.FixedBitSet) bool
}

// noneInferer implements InferenceNone.
type noneInferer struct{}

func (noneInferer) Preprocess(*bitset.FixedBitGraph)     {}
func (noneInferer) PropagateNo(int, *bitset.FixedBitSet) {}
func (noneInferer) Skip(int, *bitset.FixedBitSet) bool   { return false }

// globalDomination precomputes, for every ordered pair (i, j) with i != j,
// whether j dominates i: N(i) \ N(j) \ {j} = ∅. unsets[j] then holds every
// i dominated by j, so that rejecting j also removes every vertex it
// dominates from the candidate set (§4.D).
type globalDomination struct {
	unsets []bitset.FixedBitSet
	skip   bool
}

func newGlobalDomination(skip bool) *globalDomination {
	return &globalDomination{skip: skip}
}

func (d *globalDomination) Preprocess(g *bitset.FixedBitGraph) {
	n := g.N()
	d.unsets = make([]bitset.FixedBitSet, n)
	for j := 0; j < n; j++ {
		d.unsets[j] = bitset.New(g.Words(), n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			nij := g.Neighbourhood(i).Clone()
			nij.IntersectComplement(g.Neighbourhood(j))
			nij.Unset(j)
			if nij.AllZeros() {
				d.unsets[j].Set(i)
			}
		}
	}
}

func (d *globalDomination) PropagateNo(v int, p *bitset.FixedBitSet) {
	p.IntersectComplement(&d.unsets[v])
}

func (d *globalDomination) Skip(v int, p *bitset.FixedBitSet) bool {
	if !d.skip {
		return false
	}
	return !p.Test(v)
}

// lazyGlobalDomination computes the same relation as globalDomination but
// memoises individual (i, j) tests on demand instead of precomputing the
// full n^2 table up front.
type lazyGlobalDomination struct {
	g     *bitset.FixedBitGraph
	cache map[[2]int]bool
}

func newLazyGlobalDomination() *lazyGlobalDomination {
	return &lazyGlobalDomination{cache: make(map[[2]int]bool)}
}

func (d *lazyGlobalDomination) Preprocess(g *bitset.FixedBitGraph) {
	d.g = g
}

// dominates reports whether j dominates i, memoised.
func (d *lazyGlobalDomination) dominates(i, j int) bool {
	key := [2]int{i, j}
	if v, ok := d.cache[key]; ok {
		return v
	}
	nij := d.g.Neighbourhood(i).Clone()
	nij.IntersectComplement(d.g.Neighbourhood(j))
	nij.Unset(j)
	v := nij.AllZeros()
	d.cache[key] = v
	return v
}

func (d *lazyGlobalDomination) PropagateNo(v int, p *bitset.FixedBitSet) {
	n := d.g.N()
	for i := 0; i < n; i++ {
		if i != v && p.Test(i) && d.dominates(i, v) {
			p.Unset(i)
		}
	}
}

func (d *lazyGlobalDomination) Skip(int, *bitset.FixedBitSet) bool { return false }

func newInferer(kind Inference) Inferer {
	switch kind {
	case GlobalDomination:
		return newGlobalDomination(false)
	case GlobalDominationSkip:
		return newGlobalDomination(true)
	case LazyGlobalDomination:
		return newLazyGlobalDomination()
	default:
		return noneInferer{}
	}
}
