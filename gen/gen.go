// Package gen generates random graphs for benchmarking and testing the
// solver packages: Erdos-Renyi G(n,p), exact-edge-count G(n,m), a
// Euclidean-affinity generator biased toward connecting nearby points, and a
// Kronecker recursive generator for scale-free-ish instances, all accepting
// a caller-supplied *rand.Rand for reproducibility.
package gen

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/booltime/parasols"
)

func rng(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ErdosRenyi returns a random simple graph on n nodes where each of the
// n*(n-1)/2 possible edges is present independently with probability p.
func ErdosRenyi(n int, p float64, r *rand.Rand) *graph.Graph {
	r = rng(r)
	g := graph.New(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r.Float64() < p {
				g.AddEdge(graph.NI(u), graph.NI(v))
			}
		}
	}
	return g
}

// GNM returns a random simple graph on n nodes with exactly m distinct
// edges chosen uniformly at random, grounded on the teacher's Euclidean
// generator's rejection-sampling discipline: a candidate pair is redrawn on
// self-loop or duplicate, bounded by patience attempts per edge before
// giving up with an error (the graph cannot reach m edges without becoming
// non-simple, e.g. m > n*(n-1)/2).
func GNM(n, m, patience int, r *rand.Rand) (*graph.Graph, error) {
	r = rng(r)
	g := graph.New(n)
	if patience <= 0 {
		patience = 100
	}
	added := 0
	for added < m {
		ok := false
		for attempt := 0; attempt < patience; attempt++ {
			u := graph.NI(r.Intn(n))
			v := graph.NI(r.Intn(n))
			if u == v || g.HasEdge(u, v) {
				continue
			}
			g.AddEdge(u, v)
			added++
			ok = true
			break
		}
		if !ok {
			return nil, errors.New("gen: overcrowding, could not place a new edge within patience budget")
		}
	}
	return g, nil
}

// Point is a node's position on the unit square, returned by Euclidean
// alongside the generated graph.
type Point struct{ X, Y float64 }

// Euclidean generates a random simple graph with nodes placed uniformly on
// the unit square and edges added between random pairs with a bias toward
// nearby points, following the teacher's Euclidean generator (random.go):
// a candidate pair is accepted unless rejected by the affinity test
// (dist*affinity > r.ExpFloat64() favors near nodes) or already present.
// It gives up with an error once either kind of rejection (affinity or
// duplicate) has occurred nEdges*patience times in total over the run.
func Euclidean(n, nEdges int, affinity float64, patience int, r *rand.Rand) (*graph.Graph, []Point, error) {
	r = rng(r)
	if patience <= 0 {
		patience = 100
	}
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: r.Float64(), Y: r.Float64()}
	}
	g := graph.New(n)
	var tooFar, dup int
	for added := 0; added < nEdges; {
		if tooFar >= nEdges*patience {
			return nil, nil, errors.New("gen: affinity not found within patience budget")
		}
		if dup >= nEdges*patience {
			return nil, nil, errors.New("gen: overcrowding, could not place a new edge within patience budget")
		}
		u := graph.NI(r.Intn(n))
		v := graph.NI(r.Intn(n))
		if u == v {
			continue
		}
		dist := math.Hypot(pos[v].X-pos[u].X, pos[v].Y-pos[u].Y)
		if dist*affinity > r.ExpFloat64() {
			tooFar++
			continue
		}
		if g.HasEdge(u, v) {
			dup++
			continue
		}
		g.AddEdge(u, v)
		added++
	}
	return g, pos, nil
}

// Kronecker generates a Kronecker-style random simple graph on up to 2^scale
// nodes (node ids that appear in no drawn pair are dropped, so the returned
// graph may have fewer; an id drawn only as a self-loop stays, isolated),
// targeting edgeFactor*2^scale edges before loop/duplicate rejection,
// following the teacher's recursive-quadrant bit construction
// (kronecker.go): each node id's bits are drawn one at a time, biased by the
// initiator probabilities a=0.57, b=c=0.19, then surviving endpoints are
// relabelled through a random permutation so node numbering carries no
// structural artefact of the generation order.
func Kronecker(scale uint, edgeFactor float64, r *rand.Rand) *graph.Graph {
	r = rng(r)
	n := 1 << scale
	m := int(edgeFactor*float64(n) + 0.5)
	const a, b, c = 0.57, 0.19, 0.19
	ab := a + b
	cNorm := c / (1 - ab)
	aNorm := a / ab

	type pair struct{ i, j int }
	edges := make([]pair, m)
	present := make(map[int]bool)
	for k := range edges {
		var i, j int
		for bit := 1; bit < n; bit <<= 1 {
			if r.Float64() > ab {
				i |= bit
				if r.Float64() > cNorm {
					j |= bit
				}
			} else if r.Float64() > aNorm {
				j |= bit
			}
		}
		present[i] = true
		present[j] = true
		edges[k] = pair{i, j}
	}

	nodes := make([]int, 0, len(present))
	for id := range present {
		nodes = append(nodes, id)
	}
	perm := r.Perm(len(nodes))
	relabel := make(map[int]graph.NI, len(nodes))
	for idx, id := range nodes {
		relabel[id] = graph.NI(perm[idx])
	}

	g := graph.New(len(nodes))
	for _, e := range edges {
		if e.i == e.j {
			continue
		}
		g.AddEdge(relabel[e.i], relabel[e.j])
	}
	return g
}
