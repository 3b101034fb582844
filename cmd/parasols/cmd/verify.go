package cmd

import (
	"fmt"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/errs"
)

// verifyResult independently re-checks that out's reported members actually
// have the claimed shape in the graph(s) they were drawn from, grounded on
// original_source/programs/solve_max_clique/solve_max_clique.cc's
// verification pass. A verification failure is fatal to the CLI, since it
// indicates a bug in the solver rather than a user error.
func verifyResult(algorithm string, target, pattern *graph.Graph, out outcome) error {
	if out.aborted {
		return nil
	}
	switch algorithm {
	case "biclique":
		return verifyBiclique(target, out)
	case "iso", "cbjd", "cbjdprobe", "cbjdfast":
		return verifyIso(pattern, target, out)
	default:
		return verifyClique(target, out)
	}
}

func verifyClique(g *graph.Graph, out outcome) error {
	if len(out.members) != out.size {
		return errs.New(errs.KindVerification, fmt.Sprintf("reported size %d does not match %d members", out.size, len(out.members)))
	}
	for i, u := range out.members {
		for _, v := range out.members[i+1:] {
			if !g.HasEdge(u, v) {
				return errs.New(errs.KindVerification, fmt.Sprintf("members %s and %s are not adjacent", g.Name(u), g.Name(v)))
			}
		}
	}
	return nil
}

func verifyBiclique(g *graph.Graph, out outcome) error {
	if len(out.members) != out.size || len(out.membersB) != out.size {
		return errs.New(errs.KindVerification, fmt.Sprintf("reported size %d does not match side sizes %d/%d", out.size, len(out.members), len(out.membersB)))
	}
	for _, u := range out.members {
		for _, v := range out.membersB {
			if !g.HasEdge(u, v) {
				return errs.New(errs.KindVerification, fmt.Sprintf("%s and %s are not adjacent", g.Name(u), g.Name(v)))
			}
		}
	}
	return nil
}

func verifyIso(pattern, target *graph.Graph, out outcome) error {
	if out.size == 0 {
		return nil
	}
	if len(out.members) != pattern.N() {
		return errs.New(errs.KindVerification, fmt.Sprintf("mapping has %d entries, pattern has %d vertices", len(out.members), pattern.N()))
	}
	seen := make(map[graph.NI]bool, len(out.members))
	for v := 0; v < pattern.N(); v++ {
		f := out.members[v]
		if seen[f] {
			return errs.New(errs.KindVerification, fmt.Sprintf("target vertex %s used more than once", target.Name(f)))
		}
		seen[f] = true
		for _, nb := range pattern.Neighbours(graph.NI(v)) {
			if !target.HasEdge(f, out.members[nb]) {
				return errs.New(errs.KindVerification, fmt.Sprintf("pattern edge (%s,%s) not preserved", pattern.Name(graph.NI(v)), pattern.Name(nb)))
			}
		}
	}
	return nil
}
