// Package dimacs reads the DIMACS clique-instance text format (§6): ASCII,
// comment lines starting with 'c', a header "p edge N M", then M lines
// "e u v" with 1-based vertex ids.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/errs"
)

// Read parses r as a DIMACS clique instance. It fails with a
// *errs.SolverError of Kind errs.KindParse on a missing/malformed header, a
// non-monotone size line (the header appearing more than once, or with a
// smaller N than already committed), an out-of-range vertex id, an edge
// already given by an earlier line (in either orientation), or an
// edge-count mismatch against the header's M. Self-loops ("e u u") are
// ignored rather than rejected; every edge is symmetrised (AddEdge already
// does this for both orderings).
func Read(r io.Reader) (*graph.Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var g *graph.Graph
	var n, m, edgesSeen int
	haveHeader := false
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		switch text[0] {
		case 'c':
			continue
		case 'p':
			if haveHeader {
				return nil, parseErr(line, "duplicate 'p' header")
			}
			fields := strings.Fields(text)
			if len(fields) != 4 || fields[1] != "edge" {
				return nil, parseErr(line, fmt.Sprintf("malformed header %q, want 'p edge N M'", text))
			}
			var err error
			n, err = strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, parseErr(line, fmt.Sprintf("invalid vertex count %q", fields[2]))
			}
			m, err = strconv.Atoi(fields[3])
			if err != nil || m < 0 {
				return nil, parseErr(line, fmt.Sprintf("invalid edge count %q", fields[3]))
			}
			g = graph.New(n)
			haveHeader = true
		case 'e':
			if !haveHeader {
				return nil, parseErr(line, "edge line before 'p edge N M' header")
			}
			fields := strings.Fields(text)
			if len(fields) != 3 {
				return nil, parseErr(line, fmt.Sprintf("malformed edge line %q, want 'e u v'", text))
			}
			u, err1 := strconv.Atoi(fields[1])
			v, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, parseErr(line, fmt.Sprintf("non-integer endpoint in %q", text))
			}
			if u < 1 || u > n || v < 1 || v > n {
				return nil, parseErr(line, fmt.Sprintf("vertex out of range [1,%d] in %q", n, text))
			}
			edgesSeen++
			if u == v {
				continue
			}
			if g.HasEdge(graph.NI(u-1), graph.NI(v-1)) {
				return nil, parseErr(line, fmt.Sprintf("duplicate edge in %q", text))
			}
			g.AddEdge(graph.NI(u-1), graph.NI(v-1))
		default:
			return nil, parseErr(line, fmt.Sprintf("unrecognized line type %q", text))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.KindParse, "reading DIMACS input", err)
	}
	if !haveHeader {
		return nil, parseErr(line, "missing 'p edge N M' header")
	}
	if edgesSeen != m {
		return nil, parseErr(line, fmt.Sprintf("header declared %d edges, found %d", m, edgesSeen))
	}
	return g, nil
}

// Write emits g in DIMACS clique format, 1-based, each undirected edge
// written once (u < v).
func Write(w io.Writer, g *graph.Graph) error {
	n := g.N()
	var m int
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbours(graph.NI(u)) {
			if int(v) > u {
				m++
			}
		}
	}
	if _, err := fmt.Fprintf(w, "p edge %d %d\n", n, m); err != nil {
		return err
	}
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbours(graph.NI(u)) {
			if int(v) > u {
				if _, err := fmt.Fprintf(w, "e %d %d\n", u+1, int(v)+1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseErr(line int, msg string) error {
	return errs.New(errs.KindParse, fmt.Sprintf("line %d: %s", line, msg))
}
