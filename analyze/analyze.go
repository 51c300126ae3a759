// Package analyze derives performance statistics from a completed run's
// trade ledger and equity curve. Everything here is a read-only view.
package analyze

import (
	"math"
	"sort"

	"github.com/dkim-quant/breakout/journal"
	"github.com/dkim-quant/breakout/strategy"
)

// tradingDaysPerYear annualizes the Sharpe ratio from daily returns.
const tradingDaysPerYear = 252

// ReasonCount is one bucket of the exit-reason histogram.
type ReasonCount struct {
	Reason strategy.Reason
	Count  int
}

// Summary aggregates a full ledger. Ratios that would divide by zero are
// flagged absent instead of faulting: PayoffRatio means nothing without
// a losing trade, ProfitFactor without a gross loss.
type Summary struct {
	TotalTrades int
	Wins        int
	Losses      int
	WinRate     float64 // percent

	TotalPnL float64
	AvgWin   float64
	AvgLoss  float64

	PayoffRatio     float64
	HasPayoffRatio  bool
	ProfitFactor    float64
	HasProfitFactor bool

	MaxDrawdown    float64
	MaxDrawdownPct float64
	SharpeRatio    float64

	InitialCapital float64
	FinalEquity    float64
	TotalReturnPct float64

	ByReason []ReasonCount
}

// Analyze computes the summary for one run. finalCash is the terminal
// cash balance after forced liquidation, i.e. the final equity.
func Analyze(trades []journal.Trade, equity []journal.EquitySnapshot, initialCapital, finalCash float64) Summary {
	s := Summary{
		InitialCapital: initialCapital,
		FinalEquity:    finalCash,
		TotalTrades:    len(trades),
	}
	if initialCapital > 0 {
		s.TotalReturnPct = (finalCash - initialCapital) / initialCapital * 100
	}

	var winSum, lossSum float64
	reasons := make(map[strategy.Reason]int)

	for _, t := range trades {
		s.TotalPnL += t.PnL
		reasons[t.Reason]++
		switch {
		case t.PnL > 0:
			s.Wins++
			winSum += t.PnL
		case t.PnL < 0:
			s.Losses++
			lossSum += t.PnL
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	}
	if s.Wins > 0 {
		s.AvgWin = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
		s.PayoffRatio = math.Abs(s.AvgWin / s.AvgLoss)
		s.HasPayoffRatio = true
		s.ProfitFactor = winSum / math.Abs(lossSum)
		s.HasProfitFactor = true
	}

	s.MaxDrawdown, s.MaxDrawdownPct = drawdown(equity)
	s.SharpeRatio = sharpe(equity)
	s.ByReason = reasonHistogram(reasons)

	return s
}

// drawdown returns the deepest fall from a running equity peak, absolute
// and as a percent of that peak.
func drawdown(equity []journal.EquitySnapshot) (dd, ddPct float64) {
	var peak float64
	for _, e := range equity {
		if e.Equity > peak {
			peak = e.Equity
		}
		if peak <= 0 {
			continue
		}
		fall := e.Equity - peak
		if fall < dd {
			dd = fall
		}
		if pct := fall / peak * 100; pct < ddPct {
			ddPct = pct
		}
	}
	return dd, ddPct
}

// sharpe annualizes the mean/stddev of daily equity returns.
func sharpe(equity []journal.EquitySnapshot) float64 {
	var returns []float64
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Equity
		if prev <= 0 {
			continue
		}
		returns = append(returns, equity[i].Equity/prev-1)
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	sd := math.Sqrt(variance)
	if sd == 0 {
		return 0
	}
	return mean / sd * math.Sqrt(tradingDaysPerYear)
}

// reasonHistogram orders buckets by descending count, ties by name so
// the report is stable across runs.
func reasonHistogram(reasons map[strategy.Reason]int) []ReasonCount {
	out := make([]ReasonCount, 0, len(reasons))
	for r, n := range reasons {
		out = append(out, ReasonCount{Reason: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
