// Package iso implements the subgraph-isomorphism core ("CB"): domain-based
// backtracking search for an induced-or-not mapping of a pattern graph into
// a target graph. Domains are tightened before and during search by
// supplemental common-neighbour and non-backtracking-walk auxiliary graphs,
// forward-checking propagation, Régin all-different filtering over the
// unassigned domains, vertex domination, and conflict-directed backjumping.
package iso

import (
	"github.com/booltime/parasols"
	"github.com/booltime/parasols/bitset"
)

// Params configures the search.
type Params struct {
	// Induced requires that non-adjacency in the pattern maps to
	// non-adjacency in the target (a full induced subgraph), not just that
	// pattern edges are preserved.
	Induced bool
	// AuxLevels is the number of l>=2 auxiliary graphs to build: graph i
	// gets an edge between v,w when |N(v) ∩ N(w)| >= i+1. 0 disables this
	// class.
	AuxLevels int
	// Walk3Levels is the number of l>=3 auxiliary graphs to build: graph i
	// gets an edge between v,w when the number of non-backtracking length-3
	// walks between them is >= i+1. 0 disables this class.
	Walk3Levels int
	// Walk4Levels is the number of l>=4 auxiliary graphs to build, same
	// shape as Walk3Levels but over length-4 walks. 0 disables this class.
	Walk4Levels int
	Abort       func() bool
	// NodeLimit, if > 0, bounds the number of branching nodes visited
	// before giving up (used by Probe).
	NodeLimit int64
}

// Result is the contract for subgraph isomorphism: a mapping from pattern
// vertex to target vertex if Found, else a zero-value (empty) map.
type Result struct {
	Found   bool
	Mapping []graph.NI // index by pattern vertex; only valid entries [0,len(pattern))
	Nodes   int64
	Aborted bool
}

// Solve returns the first mapping of pattern into target under params, or
// Found=false if none exists (or the search aborted). It fails only with
// *bitset.ErrGraphTooBig (which errors.Is matches against errs.KindTooBig)
// if target exceeds the bitset capacity ladder.
func Solve(pattern, target *graph.Graph, params Params) (Result, error) {
	if pattern.N() > target.N() {
		return Result{Found: false}, nil
	}
	s, err := newSearch(pattern, target, params)
	if err != nil {
		return Result{}, err
	}
	ok := s.search()
	var mapping []graph.NI
	if ok {
		mapping = s.assignment()
	}
	return Result{Found: ok, Mapping: mapping, Nodes: s.nodes, Aborted: s.aborted}, nil
}

// Probe runs one bounded attempt using only the base adjacency graphs (no
// auxiliary filtering): if it proves satisfiable or unsatisfiable within
// nodeLimit nodes, that result is authoritative and Solve need not be
// called; a nodeLimit exhaustion is reported via LimitHit so the caller can
// fall through to the full search.
type ProbeResult struct {
	Result
	LimitHit bool
}

func Probe(pattern, target *graph.Graph, nodeLimit int64) (ProbeResult, error) {
	if pattern.N() > target.N() {
		return ProbeResult{Result: Result{Found: false}}, nil
	}
	s, err := newSearch(pattern, target, Params{NodeLimit: nodeLimit})
	if err != nil {
		return ProbeResult{}, err
	}
	ok := s.search()
	if s.limitHit {
		return ProbeResult{Result: Result{Nodes: s.nodes}, LimitHit: true}, nil
	}
	var mapping []graph.NI
	if ok {
		mapping = s.assignment()
	}
	return ProbeResult{Result: Result{Found: ok, Mapping: mapping, Nodes: s.nodes}}, nil
}

type search struct {
	pattern, target *graph.Graph
	params          Params
	np, nt          int
	domains         []bitset.FixedBitSet // domains[v] over target vertices
	assigned        []graph.NI           // assigned[v] = target vertex, or -1
	used            bitset.FixedBitSet   // target vertices currently taken

	patternDominated [][]int // patternDominated[v] = pattern vertices w dominated by v
	targetDominates  [][]int // targetDominates[f] = target vertices dominated by f

	conflictSet []map[int]bool // conflictSet[v] = assigned pattern vertices implicated in narrowing v's domain
	trail       []int          // currently assigned pattern vertices, in assignment order

	nodes    int64
	aborted  bool
	limitHit bool
}

func newSearch(pattern, target *graph.Graph, params Params) (*search, error) {
	np, nt := pattern.N(), target.N()
	words, err := bitset.Capacity(nt)
	if err != nil {
		return nil, err
	}

	auxPattern := buildAux(pattern, params)
	auxTarget := buildAux(target, params)
	auxPattern = append([]*graph.Graph{pattern}, auxPattern...)
	auxTarget = append([]*graph.Graph{target}, auxTarget...)

	domains := make([]bitset.FixedBitSet, np)
	for v := range domains {
		domains[v] = bitset.New(words, nt)
		domains[v].SetAll()
	}
	filterDomains(domains, auxPattern, auxTarget, params.Induced)

	assigned := make([]graph.NI, np)
	for i := range assigned {
		assigned[i] = -1
	}

	s := &search{
		pattern: pattern, target: target, params: params,
		np: np, nt: nt, domains: domains, assigned: assigned,
		used:        bitset.New(words, nt),
		conflictSet: make([]map[int]bool, np),
	}
	s.computeDomination()
	return s, nil
}

// buildAux constructs the supplemental auxiliary graphs for g: l>=2
// common-neighbour-count graphs, l>=3 non-backtracking-length-3-walk-count
// graphs, and l>=4 non-backtracking-length-4-walk-count graphs, per however
// many levels of each class params requests.
func buildAux(g *graph.Graph, params Params) []*graph.Graph {
	var auxes []*graph.Graph
	if params.AuxLevels > 0 {
		auxes = append(auxes, countsToAux(g.N(), commonNeighbourCounts(g), params.AuxLevels)...)
	}
	if params.Walk3Levels > 0 {
		auxes = append(auxes, countsToAux(g.N(), walk3Counts(g), params.Walk3Levels)...)
	}
	if params.Walk4Levels > 0 {
		auxes = append(auxes, countsToAux(g.N(), walk4Counts(g), params.Walk4Levels)...)
	}
	return auxes
}

// countsToAux turns a symmetric pairwise count matrix into k threshold
// graphs: graph i connects v,w when counts[v][w] >= i+1.
func countsToAux(n int, counts [][]int, k int) []*graph.Graph {
	auxes := make([]*graph.Graph, k)
	for i := 0; i < k; i++ {
		a := graph.New(n)
		for v := 0; v < n; v++ {
			for w := v + 1; w < n; w++ {
				if counts[v][w] >= i+1 {
					a.AddEdge(graph.NI(v), graph.NI(w))
				}
			}
		}
		auxes[i] = a
	}
	return auxes
}

func commonNeighbourCounts(g *graph.Graph) [][]int {
	n := g.N()
	counts := make([][]int, n)
	for v := range counts {
		counts[v] = make([]int, n)
	}
	for v := 0; v < n; v++ {
		nv := make(map[graph.NI]bool, g.Degree(graph.NI(v)))
		for _, x := range g.Neighbours(graph.NI(v)) {
			nv[x] = true
		}
		for w := v + 1; w < n; w++ {
			c := 0
			for _, x := range g.Neighbours(graph.NI(w)) {
				if nv[x] {
					c++
				}
			}
			counts[v][w] = c
			counts[w][v] = c
		}
	}
	return counts
}

// walk3Counts counts, for every ordered pair v,w, the number of length-3
// walks v-x-y-w with x != w and y != v, i.e. walks that never immediately
// retrace the step just taken.
func walk3Counts(g *graph.Graph) [][]int {
	n := g.N()
	counts := make([][]int, n)
	for v := range counts {
		counts[v] = make([]int, n)
	}
	for v := 0; v < n; v++ {
		for _, x := range g.Neighbours(graph.NI(v)) {
			for _, y := range g.Neighbours(x) {
				if y == graph.NI(v) {
					continue
				}
				for _, w := range g.Neighbours(y) {
					if w == x || w == graph.NI(v) {
						continue
					}
					counts[v][w]++
				}
			}
		}
	}
	return counts
}

// walk4Counts counts, for every ordered pair v,w, the number of length-4
// walks v-x-y-z-w where no step immediately retraces the previous one.
func walk4Counts(g *graph.Graph) [][]int {
	n := g.N()
	counts := make([][]int, n)
	for v := range counts {
		counts[v] = make([]int, n)
	}
	for v := 0; v < n; v++ {
		for _, x := range g.Neighbours(graph.NI(v)) {
			for _, y := range g.Neighbours(x) {
				if y == graph.NI(v) {
					continue
				}
				for _, z := range g.Neighbours(y) {
					if z == x {
						continue
					}
					for _, w := range g.Neighbours(z) {
						if w == y || w == graph.NI(v) {
							continue
						}
						counts[v][w]++
					}
				}
			}
		}
	}
	return counts
}

// filterDomains is the domain initialisation fixpoint: repeatedly narrow
// every pattern vertex's domain to target vertices whose per-aux degree
// dominates the pattern vertex's, until no domain shrinks.
func filterDomains(domains []bitset.FixedBitSet, auxP, auxT []*graph.Graph, induced bool) {
	np := len(domains)
	nt := domains[0].Len()
	changed := true
	for changed {
		changed = false
		for v := 0; v < np; v++ {
			for f := 0; f < nt; f++ {
				if !domains[v].Test(f) {
					continue
				}
				if !compatible(v, f, auxP, auxT, induced) {
					domains[v].Unset(f)
					changed = true
				}
			}
		}
	}
}

func compatible(v, f int, auxP, auxT []*graph.Graph, induced bool) bool {
	for g := range auxP {
		dv := auxP[g].Degree(graph.NI(v))
		df := auxT[g].Degree(graph.NI(f))
		if dv > df {
			return false
		}
	}
	if induced {
		// a target self-loop concept does not apply to graph.Graph (it
		// forbids loops by construction), so the induced self-loop clause
		// is vacuous here and deliberately omitted.
	}
	return true
}

// computeDomination precomputes: in the pattern, w dominates v when they are
// twins, N(v)\{w} == N(w)\{v} (any embedding using w for some target vertex
// can equally use v, so w's domain can be cut down whenever v's candidate
// set is); in the target, v dominates w when N(w) ⊆ N(v).
func (s *search) computeDomination() {
	s.patternDominated = make([][]int, s.np)
	for v := 0; v < s.np; v++ {
		nv := neighbourSet(s.pattern, v)
		for w := 0; w < s.np; w++ {
			if w == v {
				continue
			}
			nw := neighbourSet(s.pattern, w)
			hadW := nv[w]
			delete(nv, w)
			delete(nw, v)
			if setEqual(nv, nw) {
				s.patternDominated[v] = append(s.patternDominated[v], w)
			}
			if hadW {
				nv[w] = true
			}
		}
	}

	s.targetDominates = make([][]int, s.nt)
	for f := 0; f < s.nt; f++ {
		nf := neighbourSet(s.target, f)
		for h := 0; h < s.nt; h++ {
			if h == f {
				continue
			}
			nh := neighbourSet(s.target, h)
			if subsetOf(nh, nf) {
				s.targetDominates[f] = append(s.targetDominates[f], h)
			}
		}
	}
}

func neighbourSet(g *graph.Graph, v int) map[int]bool {
	m := make(map[int]bool, g.Degree(graph.NI(v)))
	for _, nb := range g.Neighbours(graph.NI(v)) {
		m[int(nb)] = true
	}
	return m
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func subsetOf(a, b map[int]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// search runs conflict-directed backjumping with forward checking: it
// selects the unassigned domain with smallest popcount (tie-break smaller
// pattern index), tries each candidate in bitset order, propagates, and
// recurses, skipping straight past variables that had nothing to do with a
// deeper dead end instead of retrying their untried candidates.
func (s *search) search() bool {
	ok, _ := s.expand()
	return ok
}

// expand returns (true, nil) on success, or (false, reason) on failure:
// reason is the set of still-assigned ancestor pattern vertices implicated
// in the dead end. A parent whose own variable is absent from reason knows
// none of its untried candidate values could have changed the outcome, so it
// skips them and forwards reason unchanged (the backjump); otherwise it
// merges reason (minus itself) into what it reports if it, too, must give up.
func (s *search) expand() (bool, map[int]bool) {
	s.nodes++
	if s.params.Abort != nil && s.params.Abort() {
		s.aborted = true
		return false, nil
	}
	if s.params.NodeLimit > 0 && s.nodes > s.params.NodeLimit {
		s.limitHit = true
		return false, nil
	}

	v, ok := s.selectUnassigned()
	if !ok {
		return true, nil // every pattern vertex assigned
	}

	var candidates []int
	s.domains[v].IterateOnes(func(f int) bool {
		candidates = append(candidates, f)
		return true
	})

	accumulated := map[int]bool{}
	for _, f := range candidates {
		if s.used.Test(f) {
			continue
		}
		snap := s.snapshot()
		s.assigned[v] = graph.NI(f)
		s.used.Set(f)
		s.trail = append(s.trail, v)

		propOK, reason := s.propagate(v, f)
		var solved bool
		if propOK {
			solved, reason = s.expand()
			if solved {
				return true, nil // keep v's assignment and the narrowed domains intact
			}
		}

		s.trail = s.trail[:len(s.trail)-1]
		s.used.Unset(f)
		s.assigned[v] = -1
		s.restore(snap)

		if s.aborted || s.limitHit {
			return false, nil
		}

		s.applyDomination(v, f)

		if reason == nil {
			reason = map[int]bool{}
		}
		if !reason[v] {
			// the dead end below did not depend on this candidate at all:
			// no value of v could have helped, so stop trying the rest of
			// v's domain and forward the same blame further up.
			return false, reason
		}
		delete(reason, v)
		for c := range reason {
			accumulated[c] = true
		}
	}
	// every value of v failed: the assignments that narrowed v's domain
	// before it was chosen share the blame.
	for c := range s.conflictSet[v] {
		accumulated[c] = true
	}
	return false, accumulated
}

func (s *search) selectUnassigned() (int, bool) {
	best := -1
	bestCount := 0
	for v := 0; v < s.np; v++ {
		if s.assigned[v] != -1 {
			continue
		}
		c := s.domains[v].PopCount()
		if best == -1 || c < bestCount {
			best, bestCount = v, c
		}
	}
	return best, best != -1
}

// markConflict records that v's assignment contributed to narrowing u's
// (still unassigned) domain, for later conflict-directed backjumping.
func (s *search) markConflict(u, v int) {
	if s.conflictSet[u] == nil {
		s.conflictSet[u] = map[int]bool{}
	}
	s.conflictSet[u][v] = true
}

// conflictReason builds the blame set reported when u's domain has just
// gone empty because of v's current assignment: v itself, plus everything
// already implicated in u's earlier narrowing.
func (s *search) conflictReason(u, v int) map[int]bool {
	reason := map[int]bool{v: true}
	for c := range s.conflictSet[u] {
		reason[c] = true
	}
	return reason
}

// propagate removes f from every other unassigned domain, intersects each
// pattern-neighbour's domain with f's target-neighbourhood, checks the
// induced non-edge constraint, and runs the Régin all-different filter over
// every remaining unassigned domain. Returns false (with a blame set) if any
// domain becomes empty or the all-different matching cannot saturate every
// unassigned pattern vertex.
func (s *search) propagate(v, f int) (bool, map[int]bool) {
	for u := 0; u < s.np; u++ {
		if u == v || s.assigned[u] != -1 {
			continue
		}
		if s.domains[u].Test(f) {
			s.domains[u].Unset(f)
			s.markConflict(u, v)
			if s.domains[u].AllZeros() {
				return false, s.conflictReason(u, v)
			}
		}
	}
	for _, nb := range s.pattern.Neighbours(graph.NI(v)) {
		u := int(nb)
		if s.assigned[u] != -1 {
			if !s.target.HasEdge(graph.NI(f), s.assigned[u]) {
				return false, map[int]bool{v: true, u: true}
			}
			continue
		}
		before := s.domains[u].PopCount()
		narrowed := s.domains[u].Clone()
		keep := bitset.New(wordsFor(s.domains[u].Len()), s.domains[u].Len())
		for _, tn := range s.target.Neighbours(graph.NI(f)) {
			keep.Set(int(tn))
		}
		narrowed.Intersect(&keep)
		if narrowed.PopCount() < before {
			s.markConflict(u, v)
		}
		s.domains[u] = narrowed
		if s.domains[u].AllZeros() {
			return false, s.conflictReason(u, v)
		}
	}
	if s.params.Induced {
		for u := 0; u < s.np; u++ {
			if u == v || s.assigned[u] == -1 {
				continue
			}
			if s.pattern.HasEdge(graph.NI(v), graph.NI(u)) {
				continue
			}
			if s.target.HasEdge(graph.NI(f), s.assigned[u]) {
				return false, map[int]bool{v: true, u: true}
			}
		}
	}
	if ok, reason := s.allDifferentPrune(v); !ok {
		return false, reason
	}
	return true, nil
}

// allDifferentPrune is Régin's all-different consistency check over every
// unassigned pattern vertex's domain: it computes a maximum bipartite
// matching between unassigned pattern vertices and target values, fails if
// the match cannot saturate every unassigned vertex (no assignment can
// possibly keep every mapped value distinct), and otherwise removes every
// domain value that lies off every alternating path reachable from a free
// value, since no maximum matching can ever route through it.
func (s *search) allDifferentPrune(v int) (bool, map[int]bool) {
	var unassigned []int
	for u := 0; u < s.np; u++ {
		if s.assigned[u] == -1 {
			unassigned = append(unassigned, u)
		}
	}
	if len(unassigned) == 0 {
		return true, nil
	}

	matchVal := make([]int, s.nt)
	for i := range matchVal {
		matchVal[i] = -1
	}
	matched := 0
	for _, u := range unassigned {
		visited := make([]bool, s.nt)
		if s.augment(u, visited, matchVal) {
			matched++
		}
	}
	if matched < len(unassigned) {
		reason := map[int]bool{v: true}
		for _, t := range s.trail {
			reason[t] = true
		}
		return false, reason
	}

	matchVar := make(map[int]int, len(unassigned))
	for f, u := range matchVal {
		if u != -1 {
			matchVar[u] = f
		}
	}

	n := s.np + s.nt + 1
	free := s.np + s.nt
	adj := make([][]int, n)
	for _, u := range unassigned {
		s.domains[u].IterateOnes(func(f int) bool {
			fn := s.np + f
			if matchVar[u] == f {
				adj[fn] = append(adj[fn], u)
			} else {
				adj[u] = append(adj[u], fn)
			}
			return true
		})
	}
	// free values lead to the extra node, which leads to every matched
	// value, so an edge on an alternating path ending at a free value lies
	// on a cycle through it.
	for f := 0; f < s.nt; f++ {
		fn := s.np + f
		if matchVal[f] == -1 {
			adj[fn] = append(adj[fn], free)
		} else {
			adj[free] = append(adj[free], fn)
		}
	}
	scc := tarjanSCC(adj)

	for _, u := range unassigned {
		var toRemove []int
		s.domains[u].IterateOnes(func(f int) bool {
			if matchVar[u] == f {
				return true
			}
			fn := s.np + f
			if scc[u] != scc[fn] {
				toRemove = append(toRemove, f)
			}
			return true
		})
		if len(toRemove) == 0 {
			continue
		}
		for _, f := range toRemove {
			s.domains[u].Unset(f)
			s.markConflict(u, v)
		}
		if s.domains[u].AllZeros() {
			return false, s.conflictReason(u, v)
		}
	}
	return true, nil
}

// augment is Kuhn's augmenting-path search for a bipartite maximum
// matching: it tries to extend the current matching to cover pattern
// vertex v, reassigning already-matched values along an alternating path
// if needed.
func (s *search) augment(v int, visited []bool, matchVal []int) bool {
	found := false
	s.domains[v].IterateOnes(func(f int) bool {
		if visited[f] {
			return true
		}
		visited[f] = true
		if matchVal[f] == -1 || s.augment(matchVal[f], visited, matchVal) {
			matchVal[f] = v
			found = true
			return false
		}
		return true
	})
	return found
}

// tarjanSCC returns, for each node index in adj, the index of its strongly
// connected component.
func tarjanSCC(adj [][]int) []int {
	n := len(adj)
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	comp := make([]int, n)
	for i := range index {
		index[i] = -1
	}
	var stack []int
	nextIndex := 0
	nextComp := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		index[v] = nextIndex
		low[v] = nextIndex
		nextIndex++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if index[w] == -1 {
				strongconnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if index[w] < low[v] {
					low[v] = index[w]
				}
			}
		}

		if low[v] == index[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp[w] = nextComp
				if w == v {
					break
				}
			}
			nextComp++
		}
	}

	for v := 0; v < n; v++ {
		if index[v] == -1 {
			strongconnect(v)
		}
	}
	return comp
}

func wordsFor(n int) int {
	w, err := bitset.Capacity(n)
	if err != nil {
		return 1
	}
	return w
}

// applyDomination is the on-unassign domination pruning step: every target
// vertex dominated by f is removed from v's domain, and for every pattern
// vertex dominated by v, f and everything it dominates is removed from that
// vertex's domain (recorded as a conflict with v). expand iterates a list of
// v's candidates taken before the loop, so the removals from v's own domain
// do not change which of v's values are still tried.
func (s *search) applyDomination(v, f int) {
	for _, h := range s.targetDominates[f] {
		s.domains[v].Unset(h)
	}
	for _, w := range s.patternDominated[v] {
		if s.assigned[w] != -1 {
			continue
		}
		s.markConflict(w, v)
		s.domains[w].Unset(f)
		for _, h := range s.targetDominates[f] {
			s.domains[w].Unset(h)
		}
	}
}

// snapshot is a restore point for everything propagate/allDifferentPrune
// mutate: domains and the accumulated conflict sets.
type snapshot struct {
	domains  []bitset.FixedBitSet
	conflict []map[int]bool
}

func (s *search) snapshot() snapshot {
	domains := make([]bitset.FixedBitSet, len(s.domains))
	for i := range s.domains {
		domains[i] = s.domains[i].Clone()
	}
	conflict := make([]map[int]bool, len(s.conflictSet))
	for i, m := range s.conflictSet {
		if m == nil {
			continue
		}
		cm := make(map[int]bool, len(m))
		for k := range m {
			cm[k] = true
		}
		conflict[i] = cm
	}
	return snapshot{domains: domains, conflict: conflict}
}

func (s *search) restore(snap snapshot) {
	s.domains = snap.domains
	s.conflictSet = snap.conflict
}

func (s *search) assignment() []graph.NI {
	out := make([]graph.NI, s.np)
	copy(out, s.assigned)
	return out
}
