package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/booltime/parasols/internal/logx"
)

var (
	verbose bool
	logger  logx.Logger
)

var rootCmd = &cobra.Command{
	Use:   "parasols",
	Short: "Bit-parallel clique, biclique, labelled-clique and subgraph-isomorphism solvers",
	Long: `parasols runs the colour-ordered branch-and-bound solvers in this module
against a DIMACS or LAD graph file: maximum clique, maximum balanced
biclique, maximum labelled clique, and subgraph isomorphism.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logx.LevelInfo
		if verbose {
			level = logx.LevelDebug
		}
		logger = logx.New(level, os.Stderr)
		return nil
	},
}

// Execute runs the root command, exiting the process with a non-zero status
// on any option error or result-verification failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}

// GetLogger returns the logger configured by --verbose.
func GetLogger() logx.Logger { return logger }
