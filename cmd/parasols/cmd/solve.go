package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/booltime/parasols"
	"github.com/booltime/parasols/internal/errs"
	"github.com/booltime/parasols/io/dimacs"
	"github.com/booltime/parasols/io/lad"
	"github.com/booltime/parasols/order"
)

var (
	flagThreads          int
	flagStopAfterFinding int
	flagInitialBound     int
	flagEnumerate        bool
	flagPrintIncumbents  bool
	flagSplitDepth       int
	flagTimeout          time.Duration
	flagComplement       bool
	flagPower            int
	flagVerify           bool
	flagFormat           string
	flagPattern          string
	flagLabelModulus     int
)

var solveCmd = &cobra.Command{
	Use:   "solve <algorithm> <order> <input-file>",
	Short: "Run a solver from the algorithm registry against a graph file",
	Args:  cobra.ExactArgs(3),
	RunE:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().IntVar(&flagThreads, "threads", 1, "worker count (clique only; others run sequentially)")
	solveCmd.Flags().IntVar(&flagStopAfterFinding, "stop-after-finding", 0, "stop once the incumbent reaches this size (0: run to completion)")
	solveCmd.Flags().IntVar(&flagInitialBound, "initial-bound", 0, "seed the incumbent; only strictly larger results are reported")
	solveCmd.Flags().BoolVar(&flagEnumerate, "enumerate", false, "count all maximum cliques instead of stopping at one (clique only)")
	solveCmd.Flags().BoolVar(&flagPrintIncumbents, "print-incumbents", false, "log every incumbent improvement")
	solveCmd.Flags().IntVar(&flagSplitDepth, "split-depth", 3, "shallow recursion depth eligible for work redistribution (clique, threads > 1)")
	solveCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "abort and return the best incumbent after this long (0: no timeout)")
	solveCmd.Flags().BoolVar(&flagComplement, "complement", false, "solve on the complement of the input graph")
	solveCmd.Flags().IntVar(&flagPower, "power", 0, "solve on the k-th power of the input graph (0: no transform)")
	solveCmd.Flags().BoolVar(&flagVerify, "verify", false, "independently re-check the returned result before printing it")
	solveCmd.Flags().StringVar(&flagFormat, "format", "dimacs", "input graph format: dimacs or lad")
	solveCmd.Flags().StringVar(&flagPattern, "pattern", "", "pattern graph file (required by iso/cbjd/cbjdprobe/cbjdfast)")
	solveCmd.Flags().IntVar(&flagLabelModulus, "label-modulus", 8, "number of distinct vertex labels for the labelled algorithm (label = vertex id mod modulus)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	algorithm, orderName, inputFile := args[0], args[1], args[2]
	log := GetLogger()

	solve, ok := registry[algorithm]
	if !ok {
		return fmt.Errorf("unknown algorithm %q, available: %s", algorithm, strings.Join(algorithmNames(), ", "))
	}
	if flagPower < 0 {
		return errs.New(errs.KindInvalidParam, "--power must be >= 0")
	}

	ord, err := parseOrder(orderName)
	if err != nil {
		return err
	}

	target, err := readGraph(inputFile, flagFormat)
	if err != nil {
		return err
	}
	if flagComplement {
		target = target.Complement()
	}
	if flagPower > 0 {
		target = target.Power(flagPower)
	}

	var pattern *graph.Graph
	if needsPattern(algorithm) {
		if flagPattern == "" {
			return errs.New(errs.KindInvalidParam, fmt.Sprintf("algorithm %q requires --pattern", algorithm))
		}
		pattern, err = readGraph(flagPattern, flagFormat)
		if err != nil {
			return err
		}
	}

	var aborted atomic.Bool
	if flagTimeout > 0 {
		timer := time.AfterFunc(flagTimeout, func() { aborted.Store(true) })
		defer timer.Stop()
	}

	opts := solveOptions{
		order:            ord,
		threads:          flagThreads,
		stopAfterFinding: flagStopAfterFinding,
		initialBound:     flagInitialBound,
		enumerate:        flagEnumerate,
		printIncumbents:  flagPrintIncumbents,
		splitDepth:       flagSplitDepth,
		labelModulus:     flagLabelModulus,
		abort:            aborted.Load,
	}

	out, err := solve(target, pattern, opts, log)
	if err != nil {
		return err
	}

	if flagVerify {
		if err := verifyResult(algorithm, target, pattern, out); err != nil {
			return err
		}
	}

	printOutcome(out, target)
	return nil
}

func parseOrder(name string) (order.Func, error) {
	switch strings.ToLower(name) {
	case "degree":
		return order.Degree, nil
	case "ex-degree", "exdegree":
		return order.ExDegree, nil
	case "min-width", "minwidth":
		return order.MinWidth, nil
	case "dynamic-ex-degree", "dynamicexdegree":
		return order.DynamicExDegree, nil
	default:
		return nil, errs.New(errs.KindInvalidParam, fmt.Sprintf("unknown order %q (valid: degree, ex-degree, min-width, dynamic-ex-degree)", name))
	}
}

func readGraph(path, format string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, fmt.Sprintf("opening %s", path), err)
	}
	defer f.Close()

	switch strings.ToLower(format) {
	case "dimacs":
		return dimacs.Read(f)
	case "lad":
		return lad.Read(f)
	default:
		return nil, errs.New(errs.KindInvalidParam, fmt.Sprintf("unknown format %q (valid: dimacs, lad)", format))
	}
}

// printOutcome writes the three-line result format.
func printOutcome(out outcome, names *graph.Graph) {
	line1 := fmt.Sprintf("%d %d", out.size, out.nodes)
	if out.cost != nil {
		line1 += fmt.Sprintf(" cost=%d", *out.cost)
	}
	if out.enumCount > 0 {
		line1 += fmt.Sprintf(" %d", out.enumCount)
	}
	if out.aborted {
		line1 += " aborted"
	}
	fmt.Println(line1)

	members := make([]string, len(out.members))
	for i, v := range out.members {
		members[i] = names.Name(v)
	}
	if len(out.membersB) > 0 {
		b := make([]string, len(out.membersB))
		for i, v := range out.membersB {
			b[i] = names.Name(v)
		}
		fmt.Printf("%s | %s\n", strings.Join(members, " "), strings.Join(b, " "))
	} else {
		fmt.Println(strings.Join(members, " "))
	}

	line3 := fmt.Sprintf("%d", out.runtime.Milliseconds())
	for _, pw := range out.perWorker {
		line3 += fmt.Sprintf(" %d", pw.Milliseconds())
	}
	fmt.Println(line3)
}
