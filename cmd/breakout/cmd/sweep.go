package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dkim-quant/breakout/analyze"
	"github.com/dkim-quant/breakout/sim"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run backtests over several parameter sets side by side",
	Long: `Sweep reads a YAML list of parameter overlays, runs one backtest per
overlay concurrently over the same prepared data, and ranks the results
by total return. Each run gets its own engine and ledger, so results
are identical to running the overlays one at a time.

Overlay file example:
  - name: baseline
  - name: loose-breakout
    min_breakout_pct: 0.5
  - name: tight-exits
    stop_loss_pct: 2.0
    take_profit_pct: 4.0`,
	RunE: runSweep,
}

var sweepParamsPath string

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON base config")
	sweepCmd.Flags().StringVar(&btDataDir, "data", "", "override data_dir")
	sweepCmd.Flags().StringVarP(&sweepParamsPath, "params", "p", "", "YAML file of parameter overlays (required)")

	sweepCmd.MarkFlagRequired("params")
}

// Overlay is one parameter set in a sweep. Zero fields keep the base value.
type Overlay struct {
	Name             string  `yaml:"name"`
	MinBreakoutPct   float64 `yaml:"min_breakout_pct"`
	VolumeSurgeRatio float64 `yaml:"volume_surge_ratio"`
	StopLossPct      float64 `yaml:"stop_loss_pct"`
	TakeProfitPct    float64 `yaml:"take_profit_pct"`
	TrailingStopPct  float64 `yaml:"trailing_stop_pct"`
	TimeoutDays      int     `yaml:"timeout_days"`
	MaxPositions     int     `yaml:"max_positions"`
	PositionSizePct  float64 `yaml:"position_size_pct"`
}

func (o Overlay) apply(base sim.Config) sim.Config {
	if o.MinBreakoutPct > 0 {
		base.MinBreakoutPct = o.MinBreakoutPct
	}
	if o.VolumeSurgeRatio > 0 {
		base.VolumeSurgeRatio = o.VolumeSurgeRatio
	}
	if o.StopLossPct > 0 {
		base.StopLossPct = o.StopLossPct
	}
	if o.TakeProfitPct > 0 {
		base.TakeProfitPct = o.TakeProfitPct
	}
	if o.TrailingStopPct > 0 {
		base.TrailingStopPct = o.TrailingStopPct
	}
	if o.TimeoutDays > 0 {
		base.TimeoutDays = o.TimeoutDays
	}
	if o.MaxPositions > 0 {
		base.MaxPositions = o.MaxPositions
	}
	if o.PositionSizePct > 0 {
		base.PositionSizePct = o.PositionSizePct
	}
	return base
}

type sweepResult struct {
	Name    string
	Summary analyze.Summary
	Err     error
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(sweepParamsPath)
	if err != nil {
		return fmt.Errorf("read params: %w", err)
	}
	var overlays []Overlay
	if err := yaml.Unmarshal(raw, &overlays); err != nil {
		return fmt.Errorf("parse params: %w", err)
	}
	if len(overlays) == 0 {
		return fmt.Errorf("no parameter sets in %s", sweepParamsPath)
	}

	prepared, err := loadPrepared(cfg)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	base, err := cfg.SimConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Sweeping %d parameter sets over %d symbols\n\n", len(overlays), len(prepared))

	// Prepared data is read-only from here on; each engine owns its own
	// ledger, so the runs can proceed in parallel.
	results := make([]sweepResult, len(overlays))
	var wg sync.WaitGroup
	for i, o := range overlays {
		wg.Add(1)
		go func(i int, o Overlay) {
			defer wg.Done()

			name := o.Name
			if name == "" {
				name = fmt.Sprintf("set-%d", i+1)
			}
			results[i] = sweepResult{Name: name}

			engine, err := sim.NewEngine(o.apply(base), prepared, nil)
			if err != nil {
				results[i].Err = err
				return
			}
			res, err := engine.Run(context.Background())
			if err != nil {
				results[i].Err = err
				return
			}
			results[i].Summary = analyze.Analyze(res.Trades, res.Equity, base.InitialCapital, res.FinalCash)
		}(i, o)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("sweep %s: %w", r.Name, r.Err)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Summary.TotalReturnPct > results[j].Summary.TotalReturnPct
	})

	fmt.Printf("%-20s %10s %8s %8s %12s\n", "NAME", "RETURN", "TRADES", "WINRATE", "FINAL")
	for _, r := range results {
		s := r.Summary
		fmt.Printf("%-20s %+9.2f%% %8d %7.1f%% %12.2f\n",
			r.Name, s.TotalReturnPct, s.TotalTrades, s.WinRate, s.FinalEquity)
	}
	return nil
}
