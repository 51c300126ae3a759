package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dkim-quant/breakout/market"
	"github.com/dkim-quant/breakout/sim"
)

// Config represents the complete backtest configuration.
type Config struct {
	InitialCapital float64  `json:"initial_capital" yaml:"initial_capital"`
	Symbols        []string `json:"symbols" yaml:"symbols"`
	StartDate      string   `json:"start_date" yaml:"start_date"`
	EndDate        string   `json:"end_date" yaml:"end_date"`

	MinBreakoutPct   float64 `json:"min_breakout_pct" yaml:"min_breakout_pct"`
	VolumeSurgeRatio float64 `json:"volume_surge_ratio" yaml:"volume_surge_ratio"`
	StopLossPct      float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	TakeProfitPct    float64 `json:"take_profit_pct" yaml:"take_profit_pct"`
	TrailingStopPct  float64 `json:"trailing_stop_pct,omitempty" yaml:"trailing_stop_pct,omitempty"`
	MaxPositions     int     `json:"max_positions" yaml:"max_positions"`
	PositionSizePct  float64 `json:"position_size_pct" yaml:"position_size_pct"`
	TimeoutDays      int     `json:"timeout_days" yaml:"timeout_days"`

	// LookbackDays of extra history is loaded before the start date so
	// indicator windows are complete on day one.
	LookbackDays int    `json:"lookback_days" yaml:"lookback_days"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`

	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// JournalConfig selects where trades and equity snapshots are persisted.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content), applies environment overrides, and validates.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// applyEnv loads .env best-effort and lets a few keys override the file.
func (c *Config) applyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("BREAKOUT_CAPITAL"); v != "" {
		cap, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BREAKOUT_CAPITAL: %w", err)
		}
		c.InitialCapital = cap
	}
	if v := os.Getenv("BREAKOUT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("BREAKOUT_DB"); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols is required")
	}
	start, end, err := c.Dates()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end_date must not be before start_date")
	}
	if c.MinBreakoutPct <= 0 {
		return fmt.Errorf("min_breakout_pct must be positive")
	}
	if c.VolumeSurgeRatio <= 0 {
		return fmt.Errorf("volume_surge_ratio must be positive")
	}
	if c.StopLossPct <= 0 {
		return fmt.Errorf("stop_loss_pct must be positive")
	}
	if c.TakeProfitPct <= 0 {
		return fmt.Errorf("take_profit_pct must be positive")
	}
	if c.TrailingStopPct < 0 {
		return fmt.Errorf("trailing_stop_pct must not be negative")
	}
	if c.MaxPositions < 1 {
		return fmt.Errorf("max_positions must be at least 1")
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 100 {
		return fmt.Errorf("position_size_pct must be in (0, 100]")
	}
	if c.TimeoutDays < 1 {
		return fmt.Errorf("timeout_days must be at least 1")
	}
	if c.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	return nil
}

// Dates parses the configured simulation window.
func (c *Config) Dates() (start, end time.Time, err error) {
	start, err = time.ParseInLocation(market.DateLayout, c.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err = time.ParseInLocation(market.DateLayout, c.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}
	return market.Day(start), market.Day(end), nil
}

// SimConfig converts to the simulator's immutable parameter set.
func (c *Config) SimConfig() (sim.Config, error) {
	start, end, err := c.Dates()
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		InitialCapital:   c.InitialCapital,
		StartDate:        start,
		EndDate:          end,
		MinBreakoutPct:   c.MinBreakoutPct,
		VolumeSurgeRatio: c.VolumeSurgeRatio,
		StopLossPct:      c.StopLossPct,
		TakeProfitPct:    c.TakeProfitPct,
		TrailingStopPct:  c.TrailingStopPct,
		TimeoutDays:      c.TimeoutDays,
		MaxPositions:     c.MaxPositions,
		PositionSizePct:  c.PositionSizePct,
	}, nil
}

// Default returns a configuration with the reference parameter set.
func Default() *Config {
	return &Config{
		InitialCapital: 10_000_000,
		Symbols: []string{
			"005930", "000660", "373220", "207940", "005380",
			"000270", "051910", "006400", "035420", "035720",
		},
		StartDate:        "2024-01-01",
		EndDate:          "2024-12-31",
		MinBreakoutPct:   1.0,
		VolumeSurgeRatio: 3.0,
		StopLossPct:      2.5,
		TakeProfitPct:    5.0,
		MaxPositions:     5,
		PositionSizePct:  10,
		TimeoutDays:      20,
		LookbackDays:     90,
		DataDir:          "./data",
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtest.sqlite",
		},
	}
}
