// Package sim implements the chronological portfolio simulator: a
// single-pass replay of daily bars against the breakout entry screen and
// the ordered exit rules, maintaining a fully reconciled cash ledger.
package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dkim-quant/breakout/indicators"
	"github.com/dkim-quant/breakout/internal/id"
	"github.com/dkim-quant/breakout/journal"
	"github.com/dkim-quant/breakout/risk"
	"github.com/dkim-quant/breakout/strategy"
)

// Engine replays the date axis once, evaluating exits before entries each
// day. It is single-threaded and deterministic: identical data and config
// produce the identical trade sequence and final cash.
type Engine struct {
	cfg      Config
	data     map[string]*indicators.Prepared
	symbols  []string
	screener strategy.Screener
	exits    strategy.ExitEvaluator

	runID     string
	cash      float64
	positions map[string]*Position
	ledger    *journal.Ledger
	journal   journal.Journal // optional persistent sink
	nextSeq   int
}

// Result is the output contract of one run: final cash plus the ordered
// trade ledger and equity curve.
type Result struct {
	RunID     string
	FinalCash float64
	Trades    []journal.Trade
	Equity    []journal.EquitySnapshot
	Start     time.Time
	End       time.Time
}

// NewEngine validates the configuration and binds it to fully prepared,
// date-sorted series. j may be nil; the in-memory ledger always records.
func NewEngine(cfg Config, data map[string]*indicators.Prepared, j journal.Journal) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("sim: no symbol data")
	}

	// Sorted symbol order keeps entry admission deterministic.
	symbols := make([]string, 0, len(data))
	for sym := range data {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	return &Engine{
		cfg:     cfg,
		data:    data,
		symbols: symbols,
		screener: strategy.Screener{
			MinBreakoutPct:   cfg.MinBreakoutPct,
			VolumeSurgeRatio: cfg.VolumeSurgeRatio,
		},
		exits: strategy.ExitEvaluator{
			StopLossPct:     cfg.StopLossPct,
			TakeProfitPct:   cfg.TakeProfitPct,
			TrailingStopPct: cfg.TrailingStopPct,
			TimeoutDays:     cfg.TimeoutDays,
		},
		runID:     id.New(),
		cash:      cfg.InitialCapital,
		positions: make(map[string]*Position),
		ledger:    journal.NewLedger(),
		journal:   j,
	}, nil
}

// RunID identifies this engine's run in the journal.
func (e *Engine) RunID() string { return e.runID }

// Run walks the sorted union of all trading dates once. Per date it
// applies exits, then admits entries, then snapshots equity. After the
// final date every still-open position is liquidated with reason forced.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	dates := e.tradingDates()
	if len(dates) == 0 {
		return Result{}, fmt.Errorf("sim: no trading dates between %s and %s",
			e.cfg.StartDate.Format("2006-01-02"), e.cfg.EndDate.Format("2006-01-02"))
	}

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if err := e.applyExits(date); err != nil {
			return Result{}, err
		}
		if err := e.admitEntries(date); err != nil {
			return Result{}, err
		}
		if err := e.recordEquity(date); err != nil {
			return Result{}, err
		}
	}

	if err := e.liquidate(dates[len(dates)-1]); err != nil {
		return Result{}, err
	}

	return Result{
		RunID:     e.runID,
		FinalCash: e.cash,
		Trades:    e.ledger.Trades(),
		Equity:    e.ledger.EquityCurve(),
		Start:     dates[0],
		End:       dates[len(dates)-1],
	}, nil
}

// tradingDates is the sorted union of bar dates across all symbols,
// restricted to the configured window.
func (e *Engine) tradingDates() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, sym := range e.symbols {
		for _, d := range e.data[sym].Dates() {
			if d.Before(e.cfg.StartDate) || d.After(e.cfg.EndDate) {
				continue
			}
			seen[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

type pendingExit struct {
	symbol string
	price  float64
	reason strategy.Reason
}

// applyExits evaluates every open position against the day's close in a
// read-only pass, then applies the closures. Removals never happen while
// positions are being iterated, so the decision order cannot depend on
// in-flight mutation. A position whose symbol has no bar today is left
// untouched: neither marked nor exited.
func (e *Engine) applyExits(date time.Time) error {
	var closing []pendingExit

	for _, sym := range e.heldSymbols() {
		pos := e.positions[sym]

		pb, ok := e.data[sym].ByDate(date)
		if !ok {
			continue
		}

		pos.LastPrice = pb.Close
		if pb.Close > pos.PeakPrice {
			pos.PeakPrice = pb.Close
		}

		reason, hit := e.exits.Evaluate(strategy.ExitInput{
			EntryPrice:  pos.EntryPrice,
			Close:       pb.Close,
			PeakPrice:   pos.PeakPrice,
			HoldingDays: holdingDays(pos.EntryDate, date),
		})
		if hit {
			closing = append(closing, pendingExit{symbol: sym, price: pb.Close, reason: reason})
		}
	}

	for _, x := range closing {
		if err := e.closePosition(e.positions[x.symbol], date, x.price, x.reason); err != nil {
			return err
		}
	}
	return nil
}

// admitEntries screens candidate symbols in sorted order and opens
// positions against live equity until cash or the position cap runs out.
func (e *Engine) admitEntries(date time.Time) error {
	if len(e.positions) >= e.cfg.MaxPositions {
		return nil
	}

	// Entries fill at the close they are sized against, so opening a
	// position moves value from cash to holdings without changing
	// equity. One equity reading therefore serves the whole phase.
	equity := e.equity()

	for _, sym := range e.symbols {
		if len(e.positions) >= e.cfg.MaxPositions {
			break
		}
		if _, held := e.positions[sym]; held {
			continue
		}

		pb, ok := e.data[sym].ByDate(date)
		if !ok {
			continue
		}
		sig, ok := e.screener.Eligible(sym, pb)
		if !ok {
			continue
		}

		qty := risk.Shares(equity, e.cfg.PositionSizePct, sig.Close)
		if qty < 1 {
			continue
		}
		cost := sig.Close * float64(qty)
		if cost > e.cash {
			continue
		}

		e.cash -= cost
		e.positions[sym] = &Position{
			Symbol:     sym,
			Quantity:   qty,
			EntryPrice: sig.Close,
			EntryDate:  date,
			LastPrice:  sig.Close,
			PeakPrice:  sig.Close,
		}
	}
	return nil
}

// liquidate force-closes whatever survives the horizon at each
// position's last known close.
func (e *Engine) liquidate(date time.Time) error {
	for _, sym := range e.heldSymbols() {
		pos := e.positions[sym]
		if err := e.closePosition(pos, date, pos.LastPrice, strategy.ReasonForced); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) closePosition(pos *Position, date time.Time, price float64, reason strategy.Reason) error {
	e.nextSeq++
	t := journal.Trade{
		ID:          fmt.Sprintf("%s-%04d", e.runID, e.nextSeq),
		RunID:       e.runID,
		Symbol:      pos.Symbol,
		EntryDate:   pos.EntryDate,
		ExitDate:    date,
		EntryPrice:  pos.EntryPrice,
		ExitPrice:   price,
		Quantity:    pos.Quantity,
		PnL:         risk.PnL(pos.EntryPrice, price, pos.Quantity),
		PnLPct:      risk.PnLPct(pos.EntryPrice, price),
		Reason:      reason,
		HoldingDays: holdingDays(pos.EntryDate, date),
	}

	e.cash += price * float64(pos.Quantity)
	delete(e.positions, pos.Symbol)

	if err := e.ledger.RecordTrade(t); err != nil {
		return err
	}
	if e.journal != nil {
		if err := e.journal.RecordTrade(t); err != nil {
			return fmt.Errorf("sim: record trade: %w", err)
		}
	}
	return nil
}

func (e *Engine) recordEquity(date time.Time) error {
	snap := journal.EquitySnapshot{
		RunID:         e.runID,
		Date:          date,
		Cash:          e.cash,
		Equity:        e.equity(),
		OpenPositions: len(e.positions),
	}

	if err := e.ledger.RecordEquity(snap); err != nil {
		return err
	}
	if e.journal != nil {
		if err := e.journal.RecordEquity(snap); err != nil {
			return fmt.Errorf("sim: record equity: %w", err)
		}
	}
	return nil
}

// equity marks every open position at its last known price.
func (e *Engine) equity() float64 {
	total := e.cash
	for _, pos := range e.positions {
		total += pos.MarketValue()
	}
	return total
}

func (e *Engine) heldSymbols() []string {
	syms := make([]string, 0, len(e.positions))
	for sym := range e.positions {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}
