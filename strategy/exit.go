package strategy

import "github.com/dkim-quant/breakout/risk"

// ExitEvaluator classifies whether an open position should close at the
// current day's close, using a fixed rule order. If a price satisfies
// several rules at once, the first match wins; a close that breaches both
// the stop and the target resolves to the stop.
type ExitEvaluator struct {
	StopLossPct     float64 // loss percent that forces an exit
	TakeProfitPct   float64 // gain percent that takes profit
	TrailingStopPct float64 // giveback from the peak close; 0 disables
	TimeoutDays     int     // maximum holding period in calendar days
}

// ExitInput is a snapshot of one open position against the day's close.
type ExitInput struct {
	EntryPrice  float64
	Close       float64
	PeakPrice   float64 // highest close seen while holding, including today
	HoldingDays int
}

// Evaluate returns the exit reason for the first matching rule, or
// ok=false to keep holding. Days with no bar for the symbol never reach
// here; staleness is tolerated upstream.
func (e ExitEvaluator) Evaluate(in ExitInput) (Reason, bool) {
	pnlPct := risk.PnLPct(in.EntryPrice, in.Close)

	if pnlPct <= -e.StopLossPct {
		return ReasonStopLoss, true
	}
	if pnlPct >= e.TakeProfitPct {
		return ReasonTakeProfit, true
	}

	// Trailing stop arms once the trade has banked half the profit target.
	if e.TrailingStopPct > 0 && pnlPct >= e.TakeProfitPct/2 && in.PeakPrice > 0 {
		giveback := risk.PnLPct(in.PeakPrice, in.Close)
		if giveback <= -e.TrailingStopPct {
			return ReasonTrailing, true
		}
	}

	if in.HoldingDays >= e.TimeoutDays {
		return ReasonTimeout, true
	}

	return "", false
}
