// Package strategy holds the breakout entry screen and the ordered exit rules.
package strategy

// Reason identifies why a position was closed.
type Reason string

const (
	ReasonStopLoss   Reason = "stop_loss"
	ReasonTakeProfit Reason = "take_profit"
	ReasonTrailing   Reason = "trailing"
	ReasonTimeout    Reason = "timeout"
	ReasonForced     Reason = "forced"
)
