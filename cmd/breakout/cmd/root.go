package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "A breakout-momentum backtesting engine for daily stock bars",
	Long: `Breakout replays historical daily price/volume bars against a
breakout-momentum trading rule, producing a trade ledger, an equity
curve and a performance summary.

It provides tools for:
  - Backtesting the breakout entry screen over CSV daily bars
  - Recording trades and equity curves in SQLite or CSV journals
  - Re-rendering reports from persisted runs
  - Sweeping strategy parameter sets side by side`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
