package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dkim-quant/breakout/analyze"
	"github.com/dkim-quant/breakout/config"
	"github.com/dkim-quant/breakout/indicators"
	"github.com/dkim-quant/breakout/journal"
	"github.com/dkim-quant/breakout/market"
	"github.com/dkim-quant/breakout/sim"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay historical bars against the breakout rule",
	Long: `Backtest loads daily bars for the configured symbols, screens each
date for breakout entries, applies the ordered exit rules, and prints a
performance summary. Trades and the equity curve are journaled per the
configuration.

Example:
  breakout backtest -c config.yaml --data ./data`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btDataDir    string
	btDBPath     string
	btCapital    float64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON config (defaults apply when empty)")
	backtestCmd.Flags().StringVar(&btDataDir, "data", "", "override data_dir (one <SYMBOL>.csv per symbol)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "override SQLite journal path")
	backtestCmd.Flags().Float64VarP(&btCapital, "capital", "b", 0, "override initial capital")
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if btConfigPath != "" {
		cfg, err = config.LoadFromFile(btConfigPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if btDataDir != "" {
		cfg.DataDir = btDataDir
	}
	if btDBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = btDBPath
	}
	if btCapital > 0 {
		cfg.InitialCapital = btCapital
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openJournal returns the configured persistent journal, or nil for "none".
func openJournal(cfg *config.Config) (journal.Journal, *journal.SQLite, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		return j, j, nil
	case "csv":
		j, err := journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil, nil
	default:
		return nil, nil, nil
	}
}

func loadPrepared(cfg *config.Config) (map[string]*indicators.Prepared, error) {
	start, end, err := cfg.Dates()
	if err != nil {
		return nil, err
	}

	loadFrom := start.AddDate(0, 0, -cfg.LookbackDays)
	data, err := market.LoadDir(cfg.DataDir, cfg.Symbols, loadFrom, end)
	if err != nil {
		return nil, err
	}
	return indicators.PrepareAll(data), nil
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	prepared, err := loadPrepared(cfg)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	j, db, err := openJournal(cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	simCfg, err := cfg.SimConfig()
	if err != nil {
		return err
	}
	engine, err := sim.NewEngine(simCfg, prepared, j)
	if err != nil {
		return err
	}

	fmt.Printf("Running backtest %s\n", engine.RunID())
	fmt.Printf("  Period:  %s .. %s\n", cfg.StartDate, cfg.EndDate)
	fmt.Printf("  Symbols: %d loaded of %d configured\n\n", len(prepared), len(cfg.Symbols))

	res, err := engine.Run(context.Background())
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	summary := analyze.Analyze(res.Trades, res.Equity, cfg.InitialCapital, res.FinalCash)

	if db != nil {
		raw, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		err = db.SaveRun(journal.Run{
			RunID:          res.RunID,
			Created:        time.Now().UTC(),
			Start:          res.Start,
			End:            res.End,
			InitialCapital: cfg.InitialCapital,
			FinalCash:      res.FinalCash,
			Trades:         summary.TotalTrades,
			Wins:           summary.Wins,
			Losses:         summary.Losses,
			WinRate:        summary.WinRate,
			TotalReturnPct: summary.TotalReturnPct,
			Config:         raw,
		})
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}

	analyze.WriteSummary(os.Stdout, summary)
	return nil
}
