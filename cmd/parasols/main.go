// Command parasols is the solver CLI: it parses a DIMACS or LAD graph file,
// dispatches to an algorithm from a static registry, and prints the
// three-line result format.
package main

import "github.com/booltime/parasols/cmd/parasols/cmd"

func main() {
	cmd.Execute()
}
