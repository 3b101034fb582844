package parallel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/clique"
	"github.com/booltime/parasols/mergeclique"
)

// Driver runs clique.Engine on multiple goroutines sharing one incumbent
// (§4.E). Workers is the thread count; Depths is D, the number of shallow
// recursion levels eligible for work redistribution (small: 3-5 is a
// sensible default for most instances).
type Driver struct {
	Workers       int
	Depths        int
	QueueCapacity int
}

// NewDriver returns a Driver with sane defaults for small inputs.
func NewDriver(workers, depths int) *Driver {
	if workers < 1 {
		workers = 1
	}
	if depths < 1 {
		depths = 1
	}
	return &Driver{Workers: workers, Depths: depths, QueueCapacity: 64}
}

// Run is the parallel counterpart of clique.Solve: it builds the same bit
// graph and root colouring once, then distributes the search over
// d.Workers goroutines, handing off excess parallelism through d.Depths
// levels of publish/steal points.
func (d *Driver) Run(g *graph.Graph, params clique.Params) (clique.Result, error) {
	start := time.Now()

	built, err := clique.Build(g, &params)
	if err != nil {
		return clique.Result{}, err
	}
	n := len(built.RootColour.POrder)

	depths := d.Depths
	if depths < 1 {
		depths = 1
	}

	queues := make([]*Queue, depths)
	for i := range queues {
		queues[i] = NewQueue(d.QueueCapacity)
	}

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	stealPointsPerWorker := depths - 1
	stealPoints := make([][]*StealPoint, workers)
	for w := range stealPoints {
		stealPoints[w] = make([]*StealPoint, stealPointsPerWorker)
		for i := range stealPoints[w] {
			stealPoints[w][i] = &StealPoint{}
		}
	}

	inc := NewIncumbent(PackPlain(params.InitialBound))
	stopThresh := params.StopThreshold()

	shared := &sharedResult{
		size:    params.InitialBound,
		stopped: make(chan struct{}),
	}
	if stopThresh <= params.InitialBound {
		shared.markStopped()
	}

	nodes := make([]int64, workers)
	perWorkerRuntime := make([]time.Duration, workers)
	logger := params.EffectiveLogger()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerStart := time.Now()
			own := stealPoints[workerID]
			wlog := logger.WithField("worker", workerID)
			wlog.Debug("worker starting")
			defer func() { wlog.Debug("worker done: runtime=%s", time.Since(workerStart)) }()

			for depth := 0; depth < depths; depth++ {
				q := queues[depth]
				if q.WantProducer() {
					// Fill (and close) the queue from a separate goroutine:
					// this worker must not block here if the queue's
					// buffer is smaller than what gets enqueued, since it
					// is also one of the queue's own consumers below.
					go func(depth int, q *Queue) {
						if depth == 0 {
							for k := 0; k < n; k++ {
								q.Enqueue(Subproblem{Offsets: []int{k}})
							}
						} else {
							for other := range stealPoints {
								if other == workerID {
									continue
								}
								if pos, ok := stealPoints[other][depth-1].Steal(); ok {
									rank := pos[len(pos)-1]
									offsets := append(append([]int(nil), pos[:len(pos)-1]...), rank+1)
									q.Enqueue(Subproblem{Offsets: offsets, OpenTail: true})
								}
							}
						}
						q.ProducerDone()
					}(depth, q)
				}

				for {
					sp, ok := q.DequeueBlocking()
					if !ok {
						break
					}
					h := &parallelHooks{
						offsets:     sp.Offsets,
						openTail:    sp.OpenTail,
						incumbent:   inc,
						stopThresh:  stopThresh,
						abort:       params.Abort,
						stealPoints: own,
						shared:      shared,
						built:       &built,
						params:      &params,
					}
					engine := &clique.Engine{BG: built.BG, Perm: params.Permutation, Inferer: built.Inferer, Hooks: h}
					rootP := built.RootP.Clone()
					engine.Expand(nil, rootP, built.RootColour)
					nodes[workerID] += h.nodes
				}
			}

			for _, sp := range own {
				sp.Finish()
			}
			perWorkerRuntime[workerID] = time.Since(workerStart)
		}(w)
	}
	wg.Wait()

	var totalNodes int64
	for _, c := range nodes {
		totalNodes += c
	}

	shared.mu.Lock()
	size := shared.size
	if params.Enumerate {
		size = len(shared.members)
	}
	result := clique.Result{
		Size:             size,
		Members:          shared.members,
		EnumerationCount: shared.enumCount,
		Aborted:          shared.externallyAborted.Load(),
	}
	shared.mu.Unlock()

	result.Nodes = totalNodes
	result.Runtime = time.Since(start)
	result.PerWorkerRuntime = perWorkerRuntime
	return result, nil
}

// sharedResult is the mutex-guarded incumbent state: the authoritative
// member set (which the lock-free atomic Incumbent only tracks the size
// of), the enumeration count, and the merge-policy history. Taken only at
// leaf events, per §4.E's "no other lock is held across a recursive call".
type sharedResult struct {
	mu                sync.Mutex
	size              int
	members           []graph.NI
	enumCount         int64
	prior             [][]graph.NI
	stopped           chan struct{}
	closeOnce         sync.Once
	externallyAborted atomic.Bool
}

func (s *sharedResult) markStopped() {
	s.closeOnce.Do(func() { close(s.stopped) })
}

// parallelHooks is the clique.Hooks implementation a worker supplies for a
// single Subproblem run.
type parallelHooks struct {
	offsets     []int
	openTail    bool
	path        []int
	incumbent   *Incumbent
	stopThresh  int
	abort       func() bool
	stealPoints []*StealPoint
	shared      *sharedResult
	built       *clique.Built
	params      *clique.Params
	nodes       int64
}

func (h *parallelHooks) IncrementNodes() { h.nodes++ }

func (h *parallelHooks) BestAnywhere() int { return UnpackPlain(h.incumbent.Load()) }

func (h *parallelHooks) Skip(depth int) (int, bool) {
	if depth < len(h.offsets)-1 {
		return h.offsets[depth], true
	}
	if depth == len(h.offsets)-1 {
		return h.offsets[depth], !h.openTail
	}
	return 0, false
}

func (h *parallelHooks) Aborted() bool {
	if h.abort != nil && h.abort() {
		h.shared.externallyAborted.Store(true)
		return true
	}
	select {
	case <-h.shared.stopped:
		return true
	default:
		return UnpackPlain(h.incumbent.Load()) >= h.stopThresh
	}
}

// liveFrom returns the first depth at which this run performs genuine
// branching (as opposed to replaying a single forced choice), so that only
// that portion of the recursion publishes steal points.
func (h *parallelHooks) liveFrom() int {
	l := len(h.offsets)
	if h.openTail && l > 0 {
		l--
	}
	return l
}

func (h *parallelHooks) Recurse(depth, skip int, call func() bool) bool {
	h.path = append(h.path, skip)
	live := depth >= h.liveFrom() && depth < len(h.stealPoints)
	var sp *StealPoint
	if live {
		sp = h.stealPoints[depth]
		sp.Publish(h.path)
	}
	// Only a steal of this position ends the siblings at this depth; a
	// steal deeper down has already stopped the child's own loop.
	call()
	result := true
	if sp != nil {
		if wasStolen := sp.Unpublish(); wasStolen {
			result = false
		}
	}
	h.path = h.path[:depth-1]
	return result
}

func (h *parallelHooks) PotentialNewBest(c []int) {
	members := h.built.Translate(c)
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()

	switch h.params.MergePolicy {
	case clique.MergeNone:
		if h.params.Enumerate {
			h.countOrAccept(members)
			return
		}
		h.acceptIfLarger(members)
	case clique.MergePrevious:
		merged := mergeclique.Merge(h.shared.members, members, h.params.OriginalGraph)
		h.acceptIfLarger(merged)
	case clique.MergeAll:
		if len(h.shared.prior) == 0 {
			h.shared.prior = append(h.shared.prior, members)
			h.acceptIfLarger(members)
			return
		}
		for _, prior := range h.shared.prior {
			merged := mergeclique.Merge(prior, members, h.params.OriginalGraph)
			if len(merged) > h.shared.size {
				h.shared.prior = append(h.shared.prior, merged)
				h.acceptIfLarger(merged)
			}
		}
		h.shared.prior = append(h.shared.prior, members)
	}
}

// countOrAccept implements §4.D's enumerate mode: the shared pruning bound
// (both h.shared.size and the atomic incumbent other workers read) is kept
// one below the true incumbent size while counting, so branches tied with
// the best-known clique are not pruned away before they can be counted.
// Must be called with h.shared.mu held.
func (h *parallelHooks) countOrAccept(members []graph.NI) {
	switch {
	case len(members) > h.shared.size+1:
		h.shared.size = len(members) - 1
		h.shared.members = members
		h.shared.enumCount = 1
		h.incumbent.TryImprove(PackPlain(h.shared.size))
		if h.params.OnIncumbent != nil {
			h.params.OnIncumbent(len(members), nil)
		}
	case len(members) == h.shared.size+1:
		h.shared.enumCount++
		if h.shared.members == nil {
			h.shared.members = members
			if h.params.OnIncumbent != nil {
				h.params.OnIncumbent(len(members), nil)
			}
		}
	}
}

// acceptIfLarger must be called with h.shared.mu held.
func (h *parallelHooks) acceptIfLarger(members []graph.NI) {
	if len(members) <= h.shared.size {
		return
	}
	h.shared.size = len(members)
	h.shared.members = members
	if h.incumbent.TryImprove(PackPlain(len(members))) && len(members) >= h.stopThresh {
		h.shared.markStopped()
	}
	h.params.EffectiveLogger().Debug("incumbent improved: size=%d", len(members))
	if h.params.OnIncumbent != nil {
		h.params.OnIncumbent(len(members), nil)
	}
}
