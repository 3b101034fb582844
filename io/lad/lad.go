// Package lad reads the LAD graph text format (§6): a first line giving N,
// then N lines each "deg v1 v2 ... vdeg", 0-based vertex ids.
package lad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/errs"
)

// Read parses r as a LAD graph. It fails with a *errs.SolverError of Kind
// errs.KindParse if the vertex count line is missing/non-integer, a degree
// line's declared count does not match the number of neighbours given, or a
// neighbour id is out of range.
func Read(r io.Reader) (*graph.Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, parseErr(1, "missing vertex count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 0 {
		return nil, parseErr(1, fmt.Sprintf("invalid vertex count %q", scanner.Text()))
	}

	g := graph.New(n)
	for v := 0; v < n; v++ {
		lineNo := v + 2
		if !scanner.Scan() {
			return nil, parseErr(lineNo, fmt.Sprintf("missing adjacency line for vertex %d", v))
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			return nil, parseErr(lineNo, "empty adjacency line")
		}
		deg, err := strconv.Atoi(fields[0])
		if err != nil || deg < 0 {
			return nil, parseErr(lineNo, fmt.Sprintf("invalid degree %q", fields[0]))
		}
		if len(fields)-1 != deg {
			return nil, parseErr(lineNo, fmt.Sprintf("vertex %d declares degree %d but lists %d neighbours", v, deg, len(fields)-1))
		}
		for _, f := range fields[1:] {
			w, err := strconv.Atoi(f)
			if err != nil || w < 0 || w >= n {
				return nil, parseErr(lineNo, fmt.Sprintf("neighbour %q out of range [0,%d)", f, n))
			}
			g.AddEdge(graph.NI(v), graph.NI(w))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.KindParse, "reading LAD input", err)
	}
	return g, nil
}

// Write emits g in LAD format: each vertex's full (symmetrised) adjacency
// list, since LAD (used for subgraph isomorphism, typically on directed
// inputs) does not assume AddEdge's undirected symmetrisation the way
// Read's caller does; Write lists exactly the neighbours graph.Graph
// records for each vertex.
func Write(w io.Writer, g *graph.Graph) error {
	if _, err := fmt.Fprintf(w, "%d\n", g.N()); err != nil {
		return err
	}
	for v := 0; v < g.N(); v++ {
		nbs := g.Neighbours(graph.NI(v))
		fmt.Fprintf(w, "%d", len(nbs))
		for _, nb := range nbs {
			fmt.Fprintf(w, " %d", nb)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func parseErr(line int, msg string) error {
	return errs.New(errs.KindParse, fmt.Sprintf("line %d: %s", line, msg))
}
