package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkim-quant/breakout/analyze"
	"github.com/dkim-quant/breakout/journal"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-render the summary for a persisted run",
	Long: `Report reads a run's trades and equity curve back from the SQLite
journal and renders the same summary the backtest printed. With no
--run the most recent run is used.`,
	RunE: runReport,
}

var (
	rptDBPath string
	rptRunID  string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&rptDBPath, "db", "d", "./backtest.sqlite", "path to SQLite journal DB")
	reportCmd.Flags().StringVarP(&rptRunID, "run", "r", "", "run ID (defaults to the latest run)")
}

func runReport(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(rptDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	var run journal.Run
	if rptRunID != "" {
		run, err = j.GetRun(rptRunID)
	} else {
		run, err = j.LatestRun()
	}
	if err != nil {
		return err
	}

	trades, err := j.ListTradesByRun(run.RunID)
	if err != nil {
		return err
	}
	equity, err := j.ListEquityByRun(run.RunID)
	if err != nil {
		return err
	}

	fmt.Printf("Run:     %s\n", run.RunID)
	fmt.Printf("Created: %s\n", run.Created.Format(time.RFC3339))
	fmt.Printf("Period:  %s .. %s\n\n",
		run.Start.Format("2006-01-02"), run.End.Format("2006-01-02"))

	summary := analyze.Analyze(trades, equity, run.InitialCapital, run.FinalCash)
	analyze.WriteSummary(os.Stdout, summary)
	return nil
}
