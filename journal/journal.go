// Package journal records trades and equity snapshots produced by a
// simulation run, in memory and optionally in SQLite or CSV.
package journal

import (
	"time"

	"github.com/dkim-quant/breakout/strategy"
)

// Trade is the immutable record of one closed position. It is created
// exactly once when the position closes and never mutated afterward.
type Trade struct {
	ID          string
	RunID       string
	Symbol      string
	EntryDate   time.Time
	ExitDate    time.Time
	EntryPrice  float64
	ExitPrice   float64
	Quantity    int64
	PnL         float64
	PnLPct      float64
	Reason      strategy.Reason
	HoldingDays int
}

// EquitySnapshot is the portfolio value at the end of one simulated date.
type EquitySnapshot struct {
	RunID         string
	Date          time.Time
	Cash          float64
	Equity        float64
	OpenPositions int
}

// Run summarizes one persisted backtest run.
type Run struct {
	RunID          string
	Created        time.Time
	Start          time.Time
	End            time.Time
	InitialCapital float64
	FinalCash      float64
	Trades         int
	Wins           int
	Losses         int
	WinRate        float64
	TotalReturnPct float64
	Config         []byte
}

type Journal interface {
	RecordTrade(Trade) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
