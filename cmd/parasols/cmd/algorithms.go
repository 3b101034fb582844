package cmd

import (
	"sort"
	"time"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/biclique"
	"github.com/booltime/parasols/clique"
	"github.com/booltime/parasols/internal/logx"
	"github.com/booltime/parasols/iso"
	"github.com/booltime/parasols/labelled"
	"github.com/booltime/parasols/order"
	"github.com/booltime/parasols/parallel"
)

// solveOptions collects the flags every algorithm in the registry may draw
// from. The CLI surface is shared; not every algorithm uses every field,
// and each ignores what doesn't apply to it.
type solveOptions struct {
	order            order.Func
	threads          int
	stopAfterFinding int
	initialBound     int
	enumerate        bool
	printIncumbents  bool
	splitDepth       int
	labelModulus     int
	abort            func() bool
}

// outcome is the common shape printed by the three-line result format, wide
// enough to cover a single member set (clique, iso mapping target) or two
// (biclique's two sides).
type outcome struct {
	size      int
	cost      *int
	members   []graph.NI
	membersB  []graph.NI
	nodes     int64
	enumCount int64
	aborted   bool
	runtime   time.Duration
	perWorker []time.Duration
}

// solverFunc is the algorithm registry's value type: a target graph plus an
// optional pattern graph (only subgraph isomorphism uses it) in, an outcome
// or error out.
type solverFunc func(target, pattern *graph.Graph, opts solveOptions, log logx.Logger) (outcome, error)

// needsPattern names the algorithms that require --pattern to be set.
func needsPattern(name string) bool {
	switch name {
	case "iso", "cbjd", "cbjdprobe", "cbjdfast":
		return true
	}
	return false
}

var registry = map[string]solverFunc{
	"clique":   runClique,
	"biclique": runBiclique,
	"labelled": runLabelled,
	// cbjd/cbjdprobe/cbjdfast all resolve to the same conflict-directed
	// backjumping search; cbjdprobe/cbjdfast additionally run Probe first
	// and only fall through to the full search if the probe's node budget
	// is exhausted.
	"iso":       runIsoPlain,
	"cbjd":      runIsoPlain,
	"cbjdprobe": runIsoProbeThenSolve,
	"cbjdfast":  runIsoProbeThenSolve,
}

// algorithmNames returns the registry's keys, sorted, for the "unknown
// algorithm" error message: unknown names print the list of available
// names and fail.
func algorithmNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runClique(target, _ *graph.Graph, opts solveOptions, log logx.Logger) (outcome, error) {
	params := clique.Params{
		InitialBound:     opts.initialBound,
		StopAfterFinding: opts.stopAfterFinding,
		Enumerate:        opts.enumerate,
		Abort:            opts.abort,
		Order:            opts.order,
		Logger:           log,
	}
	if opts.printIncumbents {
		params.OnIncumbent = func(size int, _ []int) {
			log.Info("incumbent improved to size %d", size)
		}
	}

	var res clique.Result
	var err error
	if opts.threads > 1 {
		driver := parallel.NewDriver(opts.threads, opts.splitDepth)
		res, err = driver.Run(target, params)
	} else {
		res, err = clique.Solve(target, params)
	}
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		size: res.Size, members: res.Members, nodes: res.Nodes,
		enumCount: res.EnumerationCount, aborted: res.Aborted,
		runtime: res.Runtime, perWorker: res.PerWorkerRuntime,
	}, nil
}

func runBiclique(target, _ *graph.Graph, opts solveOptions, log logx.Logger) (outcome, error) {
	params := biclique.Params{
		InitialBound:     opts.initialBound,
		StopAfterFinding: opts.stopAfterFinding,
		Abort:            opts.abort,
		Order:            opts.order,
	}
	if opts.printIncumbents {
		params.OnIncumbent = func(size int, _ []int) {
			log.Info("incumbent improved to size %d", size)
		}
	}
	res, err := biclique.Solve(target, params)
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		size: res.Size, members: res.MembersA, membersB: res.MembersB,
		nodes: res.Nodes, aborted: res.Aborted, runtime: res.Runtime,
	}, nil
}

func runLabelled(target, _ *graph.Graph, opts solveOptions, log logx.Logger) (outcome, error) {
	modulus := opts.labelModulus
	if modulus <= 0 {
		modulus = 8
	}
	labels := make([]int, target.N())
	for v := range labels {
		labels[v] = v % modulus
	}

	params := labelled.Params{
		InitialBound:     opts.initialBound,
		StopAfterFinding: opts.stopAfterFinding,
		Abort:            opts.abort,
		Order:            opts.order,
	}
	if opts.printIncumbents {
		params.OnIncumbent = func(size, cost int) {
			log.Info("incumbent improved to size %d cost %d", size, cost)
		}
	}
	res, err := labelled.Solve(target, labels, params)
	if err != nil {
		return outcome{}, err
	}
	cost := res.Cost
	return outcome{
		size: res.Size, cost: &cost, members: res.Members,
		nodes: res.Nodes, aborted: res.Aborted, runtime: res.Runtime,
	}, nil
}

func isoParams(opts solveOptions) iso.Params {
	return iso.Params{Abort: opts.abort}
}

func isoOutcome(res iso.Result, start time.Time) outcome {
	size := 0
	if res.Found {
		size = len(res.Mapping)
	}
	return outcome{
		size: size, members: res.Mapping, nodes: res.Nodes,
		aborted: res.Aborted, runtime: time.Since(start),
	}
}

func runIsoPlain(target, pattern *graph.Graph, opts solveOptions, _ logx.Logger) (outcome, error) {
	start := time.Now()
	res, err := iso.Solve(pattern, target, isoParams(opts))
	if err != nil {
		return outcome{}, err
	}
	return isoOutcome(res, start), nil
}

// runIsoProbeThenSolve runs the bounded probe first and falls through to the
// full search only if the probe's node budget was exhausted without
// resolving satisfiability.
func runIsoProbeThenSolve(target, pattern *graph.Graph, opts solveOptions, _ logx.Logger) (outcome, error) {
	start := time.Now()
	probeLimit := int64(pattern.N() * pattern.N())
	if probeLimit < 1 {
		probeLimit = 1
	}
	probe, err := iso.Probe(pattern, target, probeLimit)
	if err != nil {
		return outcome{}, err
	}
	if !probe.LimitHit {
		return isoOutcome(probe.Result, start), nil
	}
	res, err := iso.Solve(pattern, target, isoParams(opts))
	if err != nil {
		return outcome{}, err
	}
	out := isoOutcome(res, start)
	out.nodes += probe.Nodes
	return out, nil
}
